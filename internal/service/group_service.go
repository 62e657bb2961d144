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

// GroupService implements the GroupService RPC interface.
type GroupService struct {
	engine *ledger.Engine
	views  *views.Reader
	access access
	logger *slog.Logger
}

// NewGroupService creates a GroupService.
func NewGroupService(store storage.Reader, engine *ledger.Engine, logger *slog.Logger) *GroupService {
	return &GroupService{
		engine: engine,
		views:  views.NewReader(store),
		access: access{store: store},
		logger: logger,
	}
}

// CreateGroup creates a group owned by the caller, who must be an admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateGroup request received",
		"admin_id", caller,
		"name", req.Msg.Name,
		"target_amount", req.Msg.TargetAmount,
	)

	group, err := s.engine.CreateGroup(ctx, ledger.GroupInput{
		AdminID:      caller,
		Name:         req.Msg.Name,
		Description:  req.Msg.Description,
		TargetAmount: req.Msg.TargetAmount,
		WhatsAppLink: req.Msg.WhatsAppLink,
		Deadline:     req.Msg.Deadline,
	})
	if err != nil {
		s.logger.Error("CreateGroup failed", "admin_id", caller, "error", err)
		return nil, connectError(err)
	}

	summary, err := s.summary(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Group created", "group_id", group.ID, "registration_token", group.RegistrationToken)
	return connect.NewResponse(&CreateGroupResponse{Group: summary}), nil
}

// GetGroup returns a group with its statistics to its admin and members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	s.logger.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	if _, err := s.access.readable(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	summary, err := s.summary(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&GetGroupResponse{Group: summary}), nil
}

// GetGroupByToken resolves a registration link. It is callable without a
// session so the join page can show the group before sign-up.
func (s *GroupService) GetGroupByToken(ctx context.Context, req *connect.Request[GetGroupByTokenRequest]) (*connect.Response[GetGroupByTokenResponse], error) {
	s.logger.Info("GetGroupByToken request received")

	if req.Msg.RegistrationToken == "" {
		return nil, connectError(models.Invalid("registration_token", "is required"))
	}

	v, err := s.views.GroupByRegistrationToken(ctx, req.Msg.RegistrationToken)
	if err != nil {
		s.logger.Error("GetGroupByToken failed", "error", err)
		return nil, connectError(err)
	}
	if v == nil {
		return nil, notFound("registration token", req.Msg.RegistrationToken)
	}

	return connect.NewResponse(&GetGroupByTokenResponse{Group: toGroupSummary(v)}), nil
}

// ListAdminGroups lists the caller's groups with statistics.
func (s *GroupService) ListAdminGroups(ctx context.Context, req *connect.Request[ListAdminGroupsRequest]) (*connect.Response[ListAdminGroupsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListAdminGroups request received", "admin_id", caller)

	list, err := s.views.GroupsByAdmin(ctx, caller)
	if err != nil {
		s.logger.Error("ListAdminGroups failed", "admin_id", caller, "error", err)
		return nil, connectError(err)
	}

	groups := make([]*GroupSummary, len(list))
	for i, v := range list {
		groups[i] = toGroupSummary(v)
	}

	s.logger.Info("ListAdminGroups successful", "count", len(groups))
	return connect.NewResponse(&ListAdminGroupsResponse{Groups: groups}), nil
}

// UpdateGroup edits a group. Only its admin may do this, and the collected
// amount cannot be changed this way.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	s.logger.Info("UpdateGroup request received", "group_id", req.Msg.GroupID)

	if _, err := s.access.adminOf(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	update := models.GroupUpdate{
		Name:         req.Msg.Name,
		Description:  req.Msg.Description,
		WhatsAppLink: req.Msg.WhatsAppLink,
		Deadline:     req.Msg.Deadline,
	}
	if req.Msg.Status != nil {
		status := models.GroupStatus(*req.Msg.Status)
		update.Status = &status
	}

	group, err := s.engine.UpdateGroup(ctx, req.Msg.GroupID, update)
	if err != nil {
		s.logger.Error("UpdateGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}
	if group == nil {
		return nil, notFound("group", req.Msg.GroupID)
	}

	summary, err := s.summary(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&UpdateGroupResponse{Group: summary}), nil
}

// JoinGroup adds the caller to a group, found by ID or registration token.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("JoinGroup request received", "user_id", caller, "group_id", req.Msg.GroupID)

	var membership *models.Membership
	switch {
	case req.Msg.GroupID != "":
		membership, err = s.engine.JoinGroup(ctx, req.Msg.GroupID, caller)
	case req.Msg.RegistrationToken != "":
		membership, err = s.engine.JoinByToken(ctx, req.Msg.RegistrationToken, caller)
	default:
		err = models.Invalid("group_id", "group_id or registration_token is required")
	}
	if err != nil {
		s.logger.Error("JoinGroup failed", "user_id", caller, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&JoinGroupResponse{Membership: toMembership(membership)}), nil
}

// ListGroupMembers lists a group's members with what each has contributed.
func (s *GroupService) ListGroupMembers(ctx context.Context, req *connect.Request[ListGroupMembersRequest]) (*connect.Response[ListGroupMembersResponse], error) {
	s.logger.Info("ListGroupMembers request received", "group_id", req.Msg.GroupID)

	if _, err := s.access.readable(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	list, err := s.views.GroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListGroupMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	members := make([]*Member, len(list))
	for i, v := range list {
		members[i] = &Member{Membership: toMembership(v.Membership), User: toUser(v.User)}
	}

	return connect.NewResponse(&ListGroupMembersResponse{Members: members}), nil
}

// ListUserGroups lists the groups the caller has joined.
func (s *GroupService) ListUserGroups(ctx context.Context, req *connect.Request[ListUserGroupsRequest]) (*connect.Response[ListUserGroupsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ListUserGroups request received", "user_id", caller)

	list, err := s.views.UserGroups(ctx, caller)
	if err != nil {
		s.logger.Error("ListUserGroups failed", "user_id", caller, "error", err)
		return nil, connectError(err)
	}

	groups := make([]*UserGroup, len(list))
	for i, v := range list {
		groups[i] = &UserGroup{Membership: toMembership(v.Membership), Group: toGroup(v.Group)}
	}

	return connect.NewResponse(&ListUserGroupsResponse{Groups: groups}), nil
}

// SetMemberStatus changes a member's status. Only the group admin may do this.
func (s *GroupService) SetMemberStatus(ctx context.Context, req *connect.Request[SetMemberStatusRequest]) (*connect.Response[SetMemberStatusResponse], error) {
	s.logger.Info("SetMemberStatus request received",
		"group_id", req.Msg.GroupID,
		"user_id", req.Msg.UserID,
		"status", req.Msg.Status,
	)

	if _, err := s.access.adminOf(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}

	membership, err := s.engine.SetMembershipStatus(ctx, req.Msg.GroupID, req.Msg.UserID, models.MembershipStatus(req.Msg.Status))
	if err != nil {
		s.logger.Error("SetMemberStatus failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&SetMemberStatusResponse{Membership: toMembership(membership)}), nil
}

func (s *GroupService) summary(ctx context.Context, groupID string) (*GroupSummary, error) {
	v, err := s.views.GroupWithStats(ctx, groupID)
	if err != nil {
		return nil, connectError(err)
	}
	if v == nil {
		return nil, notFound("group", groupID)
	}
	return toGroupSummary(v), nil
}
