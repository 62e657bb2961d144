package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ragnerd/Kontrib/internal/models"
)

const membershipColumns = `id, group_id, user_id, contributed_amount, status, joined_at`

// CreateMembership persists a new membership with a zero contributed amount.
// A second membership for the same group and user fails with models.ErrConflict.
func (s queries) CreateMembership(ctx context.Context, m *models.Membership) error {
	if m.GroupID == "" {
		return models.Invalid("group_id", "is required")
	}
	if m.UserID == "" {
		return models.Invalid("user_id", "is required")
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = models.MembershipActive
	}
	if m.JoinedAt == 0 {
		m.JoinedAt = time.Now().Unix()
	}
	m.ContributedAmount = decimal.Zero

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO memberships (`+membershipColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.GroupID,
		m.UserID,
		models.FormatAmount(m.ContributedAmount),
		string(m.Status),
		m.JoinedAt,
	)
	if err != nil {
		return translateError(err, "membership")
	}

	return nil
}

// GetMembership retrieves a membership by ID. Returns nil, nil if not found.
func (s queries) GetMembership(ctx context.Context, id string) (*models.Membership, error) {
	m, err := scanMembership(s.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// GetMembershipByGroupAndUser retrieves the membership of a user in a group.
// Returns nil, nil if the user has not joined.
func (s queries) GetMembershipByGroupAndUser(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	m, err := scanMembership(s.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE group_id = ? AND user_id = ? LIMIT 1`,
		groupID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// ListMembershipsByGroup retrieves all memberships of a group in join order.
func (s queries) ListMembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return s.listMemberships(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE group_id = ? ORDER BY joined_at, rowid`,
		groupID)
}

// ListMembershipsByUser retrieves all memberships of a user in join order.
func (s queries) ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return s.listMemberships(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? ORDER BY joined_at, rowid`,
		userID)
}

func (s queries) listMemberships(ctx context.Context, query string, arg string) ([]*models.Membership, error) {
	rows, err := s.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// SetMembershipContributed replaces the contributed amount if it still equals expected.
func (s queries) SetMembershipContributed(ctx context.Context, membershipID string, expected, next decimal.Decimal) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE memberships SET contributed_amount = ? WHERE id = ? AND contributed_amount = ?`,
		models.FormatAmount(next), membershipID, models.FormatAmount(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update contributed amount: %w", err)
	}
	return expectOneRow(res, "membership contributed amount")
}

// SetMembershipStatus replaces the status of a membership and returns it.
// Returns nil, nil if not found.
func (s queries) SetMembershipStatus(ctx context.Context, membershipID string, status models.MembershipStatus) (*models.Membership, error) {
	res, err := s.q.ExecContext(ctx,
		`UPDATE memberships SET status = ? WHERE id = ?`,
		string(status), membershipID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update membership status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update membership status: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetMembership(ctx, membershipID)
}

func scanMembership(row scanner) (*models.Membership, error) {
	m := &models.Membership{}
	var status string
	if err := row.Scan(&m.ID, &m.GroupID, &m.UserID, &m.ContributedAmount, &status, &m.JoinedAt); err != nil {
		return nil, err
	}
	m.Status = models.MembershipStatus(status)
	return m, nil
}
