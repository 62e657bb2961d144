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

const groupColumns = `id, name, description, target_amount, collected_amount, whatsapp_link,
	registration_token, deadline, status, admin_id, created_at`

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// CreateGroup persists a new group with a zero collected amount and a fresh
// registration token.
func (s queries) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.Name == "" {
		return models.Invalid("name", "is required")
	}
	if group.AdminID == "" {
		return models.Invalid("admin_id", "is required")
	}
	if group.TargetAmount.IsNegative() {
		return models.Invalid("target_amount", "must not be negative")
	}
	if group.Status == "" {
		group.Status = models.GroupActive
	}
	if !group.Status.Valid() {
		return models.Invalid("status", "%q is not a group status", group.Status)
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.RegistrationToken == "" {
		group.RegistrationToken = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	group.CollectedAmount = decimal.Zero

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID,
		group.Name,
		nullString(group.Description),
		models.FormatAmount(group.TargetAmount),
		models.FormatAmount(group.CollectedAmount),
		nullString(group.WhatsAppLink),
		group.RegistrationToken,
		group.Deadline,
		string(group.Status),
		group.AdminID,
		group.CreatedAt,
	)
	if err != nil {
		return translateError(err, "group")
	}

	return nil
}

// GetGroup retrieves a group by ID. Returns nil, nil if not found.
func (s queries) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := scanGroup(s.q.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetGroupByRegistrationToken retrieves the group behind a join link.
// Returns nil, nil if no group has that token.
func (s queries) GetGroupByRegistrationToken(ctx context.Context, token string) (*models.Group, error) {
	group, err := scanGroup(s.q.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE registration_token = ? LIMIT 1`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by registration token: %w", err)
	}
	return group, nil
}

// ListGroupsByAdmin retrieves all groups owned by an admin, oldest first.
func (s queries) ListGroupsByAdmin(ctx context.Context, adminID string) ([]*models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE admin_id = ? ORDER BY created_at, rowid`,
		adminID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by admin: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// UpdateGroup merges the non-nil fields of update in a single statement.
// collected_amount is not touched here. Returns nil, nil if the group does not exist.
func (s queries) UpdateGroup(ctx context.Context, id string, update models.GroupUpdate) (*models.Group, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, models.Invalid("name", "must not be empty")
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, models.Invalid("status", "%q is not a group status", *update.Status)
	}

	var status any
	if update.Status != nil {
		status = string(*update.Status)
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE groups SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			whatsapp_link = COALESCE(?, whatsapp_link),
			deadline = COALESCE(?, deadline),
			status = COALESCE(?, status)
		 WHERE id = ?`,
		optional(update.Name),
		optional(update.Description),
		optional(update.WhatsAppLink),
		optional(update.Deadline),
		status,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	return s.GetGroup(ctx, id)
}

// SetGroupCollected replaces the collected amount if it still equals expected.
func (s queries) SetGroupCollected(ctx context.Context, groupID string, expected, next decimal.Decimal) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE groups SET collected_amount = ? WHERE id = ? AND collected_amount = ?`,
		models.FormatAmount(next), groupID, models.FormatAmount(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update collected amount: %w", err)
	}
	return expectOneRow(res, "group collected amount")
}

func scanGroup(row scanner) (*models.Group, error) {
	group := &models.Group{}
	var description, whatsappLink sql.NullString
	var status string
	err := row.Scan(
		&group.ID,
		&group.Name,
		&description,
		&group.TargetAmount,
		&group.CollectedAmount,
		&whatsappLink,
		&group.RegistrationToken,
		&group.Deadline,
		&status,
		&group.AdminID,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	group.Description = description.String
	group.WhatsAppLink = whatsappLink.String
	group.Status = models.GroupStatus(status)
	return group, nil
}

// optional dereferences p, or returns nil so COALESCE keeps the current value.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
