package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ragnerd/Kontrib/internal/models"
)

const contributionColumns = `id, group_id, user_id, amount, description, transaction_ref,
	proof_of_payment, payment_method, status, created_at`

// CreateContribution persists a contribution record. It only writes the
// ledger entry; the ledger updates the running totals in the same transaction.
func (s queries) CreateContribution(ctx context.Context, c *models.Contribution) error {
	if c.GroupID == "" {
		return models.Invalid("group_id", "is required")
	}
	if c.UserID == "" {
		return models.Invalid("user_id", "is required")
	}
	if !c.Amount.IsPositive() {
		return models.Invalid("amount", "must be greater than zero")
	}
	if c.Status == "" {
		c.Status = models.ContributionPending
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO contributions (`+contributionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.GroupID,
		c.UserID,
		models.FormatAmount(c.Amount),
		nullString(c.Description),
		nullString(c.TransactionRef),
		nullString(c.ProofOfPayment),
		nullString(c.PaymentMethod),
		string(c.Status),
		c.CreatedAt,
	)
	if err != nil {
		return translateError(err, "contribution")
	}

	return nil
}

// GetContribution retrieves a contribution by ID. Returns nil, nil if not found.
func (s queries) GetContribution(ctx context.Context, id string) (*models.Contribution, error) {
	c, err := scanContribution(s.q.QueryRowContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}
	return c, nil
}

// ListContributionsByGroup retrieves all contributions to a group, newest first.
func (s queries) ListContributionsByGroup(ctx context.Context, groupID string) ([]*models.Contribution, error) {
	return s.listContributions(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE group_id = ? ORDER BY created_at DESC, rowid DESC`,
		groupID)
}

// ListContributionsByUser retrieves all contributions by a user, newest first.
func (s queries) ListContributionsByUser(ctx context.Context, userID string) ([]*models.Contribution, error) {
	return s.listContributions(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID)
}

func (s queries) listContributions(ctx context.Context, query, arg string) ([]*models.Contribution, error) {
	rows, err := s.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*models.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}

	return contributions, nil
}

// SetContributionStatus moves a contribution from expected to next.
// It fails with models.ErrConcurrencyConflict if the status is no longer expected.
func (s queries) SetContributionStatus(ctx context.Context, contributionID string, expected, next models.ContributionStatus) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE contributions SET status = ? WHERE id = ? AND status = ?`,
		string(next), contributionID, string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update contribution status: %w", err)
	}
	return expectOneRow(res, "contribution status")
}

func scanContribution(row scanner) (*models.Contribution, error) {
	c := &models.Contribution{}
	var description, transactionRef, proof, method sql.NullString
	var status string
	err := row.Scan(
		&c.ID,
		&c.GroupID,
		&c.UserID,
		&c.Amount,
		&description,
		&transactionRef,
		&proof,
		&method,
		&status,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.TransactionRef = transactionRef.String
	c.ProofOfPayment = proof.String
	c.PaymentMethod = method.String
	c.Status = models.ContributionStatus(status)
	return c, nil
}
