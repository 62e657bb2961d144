package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Ragnerd/Kontrib/internal/ledger"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
	"github.com/Ragnerd/Kontrib/internal/views"
)

// ContributionService implements the ContributionService RPC interface.
type ContributionService struct {
	store  storage.Reader
	engine *ledger.Engine
	views  *views.Reader
	access access
	logger *slog.Logger
}

// NewContributionService creates a ContributionService.
func NewContributionService(store storage.Reader, engine *ledger.Engine, logger *slog.Logger) *ContributionService {
	return &ContributionService{
		store:  store,
		engine: engine,
		views:  views.NewReader(store),
		access: access{store: store},
		logger: logger,
	}
}

// SubmitContribution records a payment. Contributions are trusted and
// applied at once unless the request asks to await confirmation.
func (s *ContributionService) SubmitContribution(ctx context.Context, req *connect.Request[SubmitContributionRequest]) (*connect.Response[SubmitContributionResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SubmitContribution request received",
		"caller_id", caller,
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"payment_method", req.Msg.PaymentMethod,
	)

	userID := req.Msg.UserID
	if userID == "" {
		userID = caller
	}
	if userID != caller {
		if _, err := s.access.adminOf(ctx, req.Msg.GroupID); err != nil {
			return nil, err
		}
	}

	in := ledger.ContributionInput{
		GroupID:        req.Msg.GroupID,
		UserID:         userID,
		Amount:         req.Msg.Amount,
		Description:    req.Msg.Description,
		TransactionRef: req.Msg.TransactionRef,
		ProofOfPayment: req.Msg.ProofOfPayment,
		PaymentMethod:  req.Msg.PaymentMethod,
	}

	var contribution *models.Contribution
	if req.Msg.AwaitConfirmation {
		contribution, err = s.engine.SubmitPendingContribution(ctx, in)
	} else {
		contribution, err = s.engine.ApplyContribution(ctx, in)
	}
	if err != nil {
		s.logger.Error("SubmitContribution failed", "group_id", req.Msg.GroupID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&SubmitContributionResponse{Contribution: toContribution(contribution)}), nil
}

// ConfirmContribution confirms a pending contribution. Only the admin of
// the contribution's group may confirm, and confirming twice is harmless.
func (s *ContributionService) ConfirmContribution(ctx context.Context, req *connect.Request[ConfirmContributionRequest]) (*connect.Response[ConfirmContributionResponse], error) {
	s.logger.Info("ConfirmContribution request received", "contribution_id", req.Msg.ContributionID)

	if err := s.authorizeReview(ctx, req.Msg.ContributionID); err != nil {
		return nil, err
	}

	contribution, err := s.engine.ConfirmContribution(ctx, req.Msg.ContributionID)
	if err != nil {
		return nil, connectError(err)
	}
	if contribution == nil {
		return nil, notFound("contribution", req.Msg.ContributionID)
	}

	return connect.NewResponse(&ConfirmContributionResponse{Contribution: toContribution(contribution)}), nil
}

// RejectContribution marks a pending contribution as failed.
func (s *ContributionService) RejectContribution(ctx context.Context, req *connect.Request[RejectContributionRequest]) (*connect.Response[RejectContributionResponse], error) {
	s.logger.Info("RejectContribution request received", "contribution_id", req.Msg.ContributionID)

	if err := s.authorizeReview(ctx, req.Msg.ContributionID); err != nil {
		return nil, err
	}

	contribution, err := s.engine.RejectContribution(ctx, req.Msg.ContributionID)
	if err != nil {
		return nil, connectError(err)
	}
	if contribution == nil {
		return nil, notFound("contribution", req.Msg.ContributionID)
	}

	return connect.NewResponse(&RejectContributionResponse{Contribution: toContribution(contribution)}), nil
}

// authorizeReview checks that the caller administers the group of the
// contribution being confirmed or rejected.
func (s *ContributionService) authorizeReview(ctx context.Context, contributionID string) error {
	if contributionID == "" {
		return connectError(models.Invalid("contribution_id", "is required"))
	}
	c, err := s.store.GetContribution(ctx, contributionID)
	if err != nil {
		return connectError(err)
	}
	if c == nil {
		return notFound("contribution", contributionID)
	}
	_, err = s.access.adminOf(ctx, c.GroupID)
	return err
}

// ListGroupContributions lists a group's contributions, newest first.
func (s *ContributionService) ListGroupContributions(ctx context.Context, req *connect.Request[ListGroupContributionsRequest]) (*connect.Response[ListGroupContributionsResponse], error) {
	s.logger.Info("ListGroupContributions request received", "group_id", req.Msg.GroupID)

	if _, err := s.access.readable(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	list, err := s.views.GroupContributions(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListGroupContributions failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&ListGroupContributionsResponse{Contributions: toNamedContributions(list)}), nil
}

// ListUserContributions lists the caller's contributions across groups.
func (s *ContributionService) ListUserContributions(ctx context.Context, req *connect.Request[ListUserContributionsRequest]) (*connect.Response[ListUserContributionsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListUserContributions request received", "user_id", caller)

	list, err := s.views.UserContributions(ctx, caller)
	if err != nil {
		s.logger.Error("ListUserContributions failed", "user_id", caller, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&ListUserContributionsResponse{Contributions: toNamedContributions(list)}), nil
}
