package ledger

import (
	"context"
	"fmt"

	"github.com/Ragnerd/Kontrib/internal/calculator"
	"github.com/Ragnerd/Kontrib/internal/models"
)

// Stats are read-only and run outside the write locks; a write in flight
// shows up once it commits.

// GroupStats computes member count, completion rate and pending payments.
func (e *Engine) GroupStats(ctx context.Context, groupID string) (*calculator.GroupStats, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return e.StatsForGroup(ctx, group)
}

// StatsForGroup is GroupStats for a group the caller already loaded.
func (e *Engine) StatsForGroup(ctx context.Context, group *models.Group) (*calculator.GroupStats, error) {
	members, err := e.store.ListMembershipsByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	stats := calculator.CalculateGroupStats(group, members)
	return &stats, nil
}

// AdminStats aggregates statistics across every group owned by adminID.
// An admin with no groups gets zero values.
func (e *Engine) AdminStats(ctx context.Context, adminID string) (*calculator.AdminStats, error) {
	groups, err := e.store.ListGroupsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	inputs := make([]calculator.GroupForStats, 0, len(groups))
	for _, g := range groups {
		members, err := e.store.ListMembershipsByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, calculator.GroupForStats{Group: g, Members: members})
	}

	stats := calculator.CalculateAdminStats(inputs)
	return &stats, nil
}

// UserStats sums a user's contributions and counts their active groups.
func (e *Engine) UserStats(ctx context.Context, userID string) (*calculator.UserStats, error) {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}

	contributions, err := e.store.ListContributionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	memberships, err := e.store.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := calculator.CalculateUserStats(contributions, memberships)
	return &stats, nil
}
