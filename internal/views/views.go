// Package views joins store records into the shapes the RPC layer returns:
// groups with their statistics, memberships with their user or group, and
// contributions with the names of who paid and where.
//
// Records that point at something missing from the store are left out of
// the result rather than failing the whole read.
package views

import (
	"context"

	"github.com/Ragnerd/Kontrib/internal/calculator"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// GroupWithStats is a group together with its derived statistics.
type GroupWithStats struct {
	Group    *models.Group
	Stats    calculator.GroupStats
	Progress int
}

// MembershipWithUser is a group's view of one of its members.
type MembershipWithUser struct {
	Membership *models.Membership
	User       *models.User
}

// MembershipWithGroup is a user's view of one of their groups.
type MembershipWithGroup struct {
	Membership *models.Membership
	Group      *models.Group
}

// ContributionWithNames is a contribution with display names resolved.
type ContributionWithNames struct {
	Contribution *models.Contribution
	UserName     string
	GroupName    string
}

// Reader builds views from a store.
type Reader struct {
	store storage.Reader
}

// NewReader creates a Reader over store.
func NewReader(store storage.Reader) *Reader {
	return &Reader{store: store}
}

// GroupWithStats returns a group and its statistics, or nil, nil if the
// group does not exist.
func (r *Reader) GroupWithStats(ctx context.Context, groupID string) (*GroupWithStats, error) {
	group, err := r.store.GetGroup(ctx, groupID)
	if err != nil || group == nil {
		return nil, err
	}
	return r.withStats(ctx, group)
}

// GroupByRegistrationToken resolves a join link. Returns nil, nil for an
// unknown token.
func (r *Reader) GroupByRegistrationToken(ctx context.Context, token string) (*GroupWithStats, error) {
	group, err := r.store.GetGroupByRegistrationToken(ctx, token)
	if err != nil || group == nil {
		return nil, err
	}
	return r.withStats(ctx, group)
}

// GroupsByAdmin lists an admin's groups in creation order.
func (r *Reader) GroupsByAdmin(ctx context.Context, adminID string) ([]*GroupWithStats, error) {
	groups, err := r.store.ListGroupsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	result := make([]*GroupWithStats, 0, len(groups))
	for _, g := range groups {
		v, err := r.withStats(ctx, g)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func (r *Reader) withStats(ctx context.Context, group *models.Group) (*GroupWithStats, error) {
	members, err := r.store.ListMembershipsByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return &GroupWithStats{
		Group:    group,
		Stats:    calculator.CalculateGroupStats(group, members),
		Progress: calculator.Progress(group.CollectedAmount, group.TargetAmount),
	}, nil
}

// GroupMembers lists a group's memberships with their users.
func (r *Reader) GroupMembers(ctx context.Context, groupID string) ([]*MembershipWithUser, error) {
	memberships, err := r.store.ListMembershipsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	users := newUserCache(r.store)
	result := make([]*MembershipWithUser, 0, len(memberships))
	for _, m := range memberships {
		user, err := users.get(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		result = append(result, &MembershipWithUser{Membership: m, User: user})
	}
	return result, nil
}

// UserGroups lists a user's memberships with their groups.
func (r *Reader) UserGroups(ctx context.Context, userID string) ([]*MembershipWithGroup, error) {
	memberships, err := r.store.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := newGroupCache(r.store)
	result := make([]*MembershipWithGroup, 0, len(memberships))
	for _, m := range memberships {
		group, err := groups.get(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			continue
		}
		result = append(result, &MembershipWithGroup{Membership: m, Group: group})
	}
	return result, nil
}

// GroupContributions lists a group's contributions, newest first.
func (r *Reader) GroupContributions(ctx context.Context, groupID string) ([]*ContributionWithNames, error) {
	contributions, err := r.store.ListContributionsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return r.withNames(ctx, contributions)
}

// UserContributions lists a user's contributions across groups, newest first.
func (r *Reader) UserContributions(ctx context.Context, userID string) ([]*ContributionWithNames, error) {
	contributions, err := r.store.ListContributionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.withNames(ctx, contributions)
}

func (r *Reader) withNames(ctx context.Context, contributions []*models.Contribution) ([]*ContributionWithNames, error) {
	users := newUserCache(r.store)
	groups := newGroupCache(r.store)

	result := make([]*ContributionWithNames, 0, len(contributions))
	for _, c := range contributions {
		user, err := users.get(ctx, c.UserID)
		if err != nil {
			return nil, err
		}
		group, err := groups.get(ctx, c.GroupID)
		if err != nil {
			return nil, err
		}
		if user == nil || group == nil {
			continue
		}
		result = append(result, &ContributionWithNames{
			Contribution: c,
			UserName:     user.FullName,
			GroupName:    group.Name,
		})
	}
	return result, nil
}
