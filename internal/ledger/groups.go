package ledger

import (
	"context"
	"fmt"

	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// GroupInput describes a new fundraising group.
type GroupInput struct {
	AdminID      string
	Name         string
	Description  string
	TargetAmount string // decimal string, zero or more
	WhatsAppLink string
	Deadline     int64 // Unix seconds, 0 for none
}

// CreateGroup creates a group owned by an admin. The collected amount
// starts at zero and a registration token is generated for the join link.
func (e *Engine) CreateGroup(ctx context.Context, in GroupInput) (*models.Group, error) {
	if in.Name == "" {
		return nil, models.Invalid("name", "is required")
	}
	target, err := models.ParseAmount("target_amount", in.TargetAmount)
	if err != nil {
		return nil, err
	}
	if target.IsNegative() {
		return nil, models.Invalid("target_amount", "must not be negative")
	}
	if in.Deadline < 0 {
		return nil, models.Invalid("deadline", "must be a Unix timestamp")
	}

	admin, err := e.store.GetUser(ctx, in.AdminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, fmt.Errorf("admin %s: %w", in.AdminID, models.ErrNotFound)
	}
	if !admin.IsAdmin() {
		return nil, fmt.Errorf("user %s cannot create groups: %w", admin.ID, models.ErrForbidden)
	}

	group := &models.Group{
		Name:         in.Name,
		Description:  in.Description,
		TargetAmount: target,
		WhatsAppLink: in.WhatsAppLink,
		Deadline:     in.Deadline,
		Status:       models.GroupActive,
		AdminID:      admin.ID,
	}
	if err := e.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	e.logger.Info("Group created", "group_id", group.ID, "admin_id", admin.ID)
	return group, nil
}

// UpdateGroup applies an admin edit. Returns nil, nil if the group does not exist.
func (e *Engine) UpdateGroup(ctx context.Context, id string, update models.GroupUpdate) (*models.Group, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, models.Invalid("status", "%q is not a group status", *update.Status)
	}
	if update.Deadline != nil && *update.Deadline < 0 {
		return nil, models.Invalid("deadline", "must be a Unix timestamp")
	}
	return e.store.UpdateGroup(ctx, id, update)
}

// SetMembershipStatus moves a user's membership in a group to status. It fails
// with models.ErrNotMember if the user has not joined the group.
func (e *Engine) SetMembershipStatus(ctx context.Context, groupID, userID string, status models.MembershipStatus) (*models.Membership, error) {
	if !status.Valid() {
		return nil, models.Invalid("status", "%q is not a membership status", status)
	}
	m, err := e.store.GetMembershipByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("user %s in group %s: %w", userID, groupID, models.ErrNotMember)
	}
	if m.Status == status {
		return m, nil
	}

	updated, err := e.store.SetMembershipStatus(ctx, m.ID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("membership %s: %w", m.ID, models.ErrNotFound)
	}
	e.logger.Info("Membership status changed",
		"group_id", groupID,
		"user_id", userID,
		"from", m.Status,
		"to", status,
	)
	return updated, nil
}

// JoinGroup makes a user a member of a group. Joining twice fails with
// models.ErrConflict and leaves the existing membership untouched.
func (e *Engine) JoinGroup(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	if groupID == "" {
		return nil, models.Invalid("group_id", "is required")
	}
	if userID == "" {
		return nil, models.Invalid("user_id", "is required")
	}

	var membership *models.Membership
	err := e.store.InTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}

		existing, err := tx.GetMembershipByGroupAndUser(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("user %s already belongs to group %s: %w", userID, groupID, models.ErrConflict)
		}

		membership = &models.Membership{GroupID: groupID, UserID: userID, Status: models.MembershipActive}
		return tx.CreateMembership(ctx, membership)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Member joined group", "group_id", groupID, "user_id", userID)
	return membership, nil
}

// JoinByToken resolves a registration token and joins its group.
func (e *Engine) JoinByToken(ctx context.Context, token, userID string) (*models.Membership, error) {
	group, err := e.store.GetGroupByRegistrationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("registration token: %w", models.ErrNotFound)
	}
	return e.JoinGroup(ctx, group.ID, userID)
}
