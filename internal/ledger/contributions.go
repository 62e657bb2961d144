package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// ContributionInput is a payment reported by a member.
type ContributionInput struct {
	GroupID string
	UserID  string

	// Amount is a decimal string with at most two fractional digits, e.g. "250.50".
	Amount string

	Description    string
	TransactionRef string
	ProofOfPayment string
	PaymentMethod  string
}

func (in ContributionInput) validate() (decimal.Decimal, error) {
	if in.GroupID == "" {
		return decimal.Zero, models.Invalid("group_id", "is required")
	}
	if in.UserID == "" {
		return decimal.Zero, models.Invalid("user_id", "is required")
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return decimal.Zero, models.Invalid("payment_method", "%q is not supported", in.PaymentMethod)
	}
	return models.ParsePositiveAmount("amount", in.Amount)
}

func (in ContributionInput) contribution(amount decimal.Decimal, status models.ContributionStatus) *models.Contribution {
	return &models.Contribution{
		GroupID:        in.GroupID,
		UserID:         in.UserID,
		Amount:         amount,
		Description:    in.Description,
		TransactionRef: in.TransactionRef,
		ProofOfPayment: in.ProofOfPayment,
		PaymentMethod:  in.PaymentMethod,
		Status:         status,
	}
}

// ApplyContribution records a confirmed contribution and adds its amount to
// the group's collected amount and the member's contributed amount, all in
// one transaction.
//
// It fails with models.ErrNotFound if the group or user does not exist and
// with models.ErrNotMember if the user has not joined the group; memberships
// are never created implicitly.
func (e *Engine) ApplyContribution(ctx context.Context, in ContributionInput) (*models.Contribution, error) {
	start := time.Now()

	amount, err := in.validate()
	if err != nil {
		return nil, err
	}

	unlock, err := e.locks.Lock(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var contribution *models.Contribution
	err = e.retry(ctx, "apply", func() error {
		return e.store.InTx(ctx, func(tx storage.Tx) error {
			group, membership, err := loadParticipants(ctx, tx, in.GroupID, in.UserID)
			if err != nil {
				return err
			}

			contribution = in.contribution(amount, models.ContributionConfirmed)
			if err := tx.CreateContribution(ctx, contribution); err != nil {
				return err
			}

			return credit(ctx, tx, group, membership, amount)
		})
	})
	if err != nil {
		e.logger.Error("ApplyContribution failed",
			"group_id", in.GroupID,
			"user_id", in.UserID,
			"amount", in.Amount,
			"error", err,
		)
		return nil, err
	}

	e.metrics.incApplied(start)
	e.logger.Info("Contribution applied",
		"contribution_id", contribution.ID,
		"group_id", contribution.GroupID,
		"user_id", contribution.UserID,
		"amount", models.FormatAmount(contribution.Amount),
	)

	return contribution, nil
}

// SubmitPendingContribution records a contribution awaiting confirmation.
// It is validated like ApplyContribution but does not touch any totals
// until ConfirmContribution is called.
func (e *Engine) SubmitPendingContribution(ctx context.Context, in ContributionInput) (*models.Contribution, error) {
	amount, err := in.validate()
	if err != nil {
		return nil, err
	}

	var contribution *models.Contribution
	err = e.store.InTx(ctx, func(tx storage.Tx) error {
		if _, _, err := loadParticipants(ctx, tx, in.GroupID, in.UserID); err != nil {
			return err
		}
		contribution = in.contribution(amount, models.ContributionPending)
		return tx.CreateContribution(ctx, contribution)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Pending contribution recorded",
		"contribution_id", contribution.ID,
		"group_id", contribution.GroupID,
		"user_id", contribution.UserID,
	)

	return contribution, nil
}

// ConfirmContribution moves a pending contribution to confirmed and applies
// its amount to the totals in the same transaction.
//
// Confirming an already confirmed contribution returns it unchanged, so the
// amount is never applied twice. A failed contribution cannot be confirmed.
// Returns nil, nil if the contribution does not exist.
func (e *Engine) ConfirmContribution(ctx context.Context, id string) (*models.Contribution, error) {
	existing, err := e.store.GetContribution(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	unlock, err := e.locks.Lock(ctx, existing.GroupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result *models.Contribution
	applied := false
	err = e.retry(ctx, "confirm", func() error {
		applied = false
		return e.store.InTx(ctx, func(tx storage.Tx) error {
			c, err := tx.GetContribution(ctx, id)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("contribution %s: %w", id, models.ErrNotFound)
			}
			result = c

			switch c.Status {
			case models.ContributionConfirmed:
				return nil
			case models.ContributionFailed:
				return models.Invalid("status", "contribution %s has failed and cannot be confirmed", id)
			}

			group, membership, err := loadParticipants(ctx, tx, c.GroupID, c.UserID)
			if err != nil {
				return err
			}
			if err := tx.SetContributionStatus(ctx, c.ID, models.ContributionPending, models.ContributionConfirmed); err != nil {
				return err
			}
			if err := credit(ctx, tx, group, membership, c.Amount); err != nil {
				return err
			}

			c.Status = models.ContributionConfirmed
			applied = true
			return nil
		})
	})
	if err != nil {
		e.logger.Error("ConfirmContribution failed", "contribution_id", id, "error", err)
		return nil, err
	}

	if applied {
		e.metrics.incConfirmed()
		e.logger.Info("Contribution confirmed",
			"contribution_id", id,
			"group_id", result.GroupID,
			"amount", models.FormatAmount(result.Amount),
		)
	}

	return result, nil
}

// RejectContribution marks a pending contribution as failed. Totals are not
// touched. Rejecting an already failed contribution returns it unchanged;
// a confirmed contribution cannot be rejected. Returns nil, nil if the
// contribution does not exist.
func (e *Engine) RejectContribution(ctx context.Context, id string) (*models.Contribution, error) {
	var result *models.Contribution
	rejected := false
	err := e.retry(ctx, "reject", func() error {
		rejected = false
		return e.store.InTx(ctx, func(tx storage.Tx) error {
			c, err := tx.GetContribution(ctx, id)
			if err != nil || c == nil {
				result = nil
				return err
			}
			result = c

			switch c.Status {
			case models.ContributionFailed:
				return nil
			case models.ContributionConfirmed:
				return models.Invalid("status", "contribution %s is already confirmed", id)
			}

			if err := tx.SetContributionStatus(ctx, c.ID, models.ContributionPending, models.ContributionFailed); err != nil {
				return err
			}
			c.Status = models.ContributionFailed
			rejected = true
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if rejected {
		e.metrics.incRejected()
		e.logger.Info("Contribution rejected", "contribution_id", id)
	}

	return result, nil
}

// loadParticipants reads the group and the user's membership in it.
func loadParticipants(ctx context.Context, tx storage.Tx, groupID, userID string) (*models.Group, *models.Membership, error) {
	group, err := tx.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}

	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}

	membership, err := tx.GetMembershipByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil {
		return nil, nil, fmt.Errorf("user %s in group %s: %w", userID, groupID, models.ErrNotMember)
	}

	return group, membership, nil
}

// credit adds amount to both running totals, conditional on the values read
// earlier in the same transaction.
func credit(ctx context.Context, tx storage.Tx, group *models.Group, membership *models.Membership, amount decimal.Decimal) error {
	if err := tx.SetGroupCollected(ctx, group.ID, group.CollectedAmount, group.CollectedAmount.Add(amount)); err != nil {
		return err
	}
	return tx.SetMembershipContributed(ctx, membership.ID, membership.ContributedAmount, membership.ContributedAmount.Add(amount))
}
