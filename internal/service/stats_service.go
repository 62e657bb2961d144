package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Ragnerd/Kontrib/internal/ledger"
	"github.com/Ragnerd/Kontrib/internal/middleware"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// StatsService implements the StatsService RPC interface.
type StatsService struct {
	engine *ledger.Engine
	access access
	logger *slog.Logger
}

// NewStatsService creates a StatsService.
func NewStatsService(store storage.Reader, engine *ledger.Engine, logger *slog.Logger) *StatsService {
	return &StatsService{
		engine: engine,
		access: access{store: store},
		logger: logger,
	}
}

// GetGroupStats returns member count, completion rate and pending payments.
func (s *StatsService) GetGroupStats(ctx context.Context, req *connect.Request[GetGroupStatsRequest]) (*connect.Response[GetGroupStatsResponse], error) {
	s.logger.Info("GetGroupStats request received", "group_id", req.Msg.GroupID)

	group, err := s.access.readable(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	stats, err := s.engine.StatsForGroup(ctx, group)
	if err != nil {
		s.logger.Error("GetGroupStats failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&GetGroupStatsResponse{Stats: toGroupStats(*stats)}), nil
}

// GetAdminStats aggregates statistics over the caller's groups.
func (s *StatsService) GetAdminStats(ctx context.Context, req *connect.Request[GetAdminStatsRequest]) (*connect.Response[GetAdminStatsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if middleware.GetRole(ctx) != models.RoleAdmin {
		return nil, connectError(models.ErrForbidden)
	}
	s.logger.Info("GetAdminStats request received", "admin_id", caller)

	stats, err := s.engine.AdminStats(ctx, caller)
	if err != nil {
		s.logger.Error("GetAdminStats failed", "admin_id", caller, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&GetAdminStatsResponse{Stats: &AdminStats{
		TotalCollections: models.FormatAmount(stats.TotalCollections),
		ActiveMembers:    stats.ActiveMembers,
		PendingPayments:  stats.PendingPayments,
		CompletionRate:   stats.CompletionRate,
	}}), nil
}

// GetUserStats returns the caller's contribution total and group count.
func (s *StatsService) GetUserStats(ctx context.Context, req *connect.Request[GetUserStatsRequest]) (*connect.Response[GetUserStatsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetUserStats request received", "user_id", caller)

	stats, err := s.engine.UserStats(ctx, caller)
	if err != nil {
		s.logger.Error("GetUserStats failed", "user_id", caller, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&GetUserStatsResponse{Stats: &UserStats{
		TotalContributions: models.FormatAmount(stats.TotalContributions),
		GroupCount:         stats.GroupCount,
	}}), nil
}
