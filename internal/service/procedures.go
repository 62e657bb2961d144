package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Fully-qualified service names.
const (
	AuthServiceName         = "kontrib.v1.AuthService"
	GroupServiceName        = "kontrib.v1.GroupService"
	ContributionServiceName = "kontrib.v1.ContributionService"
	StatsServiceName        = "kontrib.v1.StatsService"
)

// Procedure paths, in the form Connect routes them.
const (
	AuthServiceRegisterProcedure = "/kontrib.v1.AuthService/Register"
	AuthServiceLoginProcedure    = "/kontrib.v1.AuthService/Login"

	GroupServiceCreateGroupProcedure      = "/kontrib.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure         = "/kontrib.v1.GroupService/GetGroup"
	GroupServiceGetGroupByTokenProcedure  = "/kontrib.v1.GroupService/GetGroupByToken"
	GroupServiceListAdminGroupsProcedure  = "/kontrib.v1.GroupService/ListAdminGroups"
	GroupServiceUpdateGroupProcedure      = "/kontrib.v1.GroupService/UpdateGroup"
	GroupServiceJoinGroupProcedure        = "/kontrib.v1.GroupService/JoinGroup"
	GroupServiceListGroupMembersProcedure = "/kontrib.v1.GroupService/ListGroupMembers"
	GroupServiceListUserGroupsProcedure   = "/kontrib.v1.GroupService/ListUserGroups"
	GroupServiceSetMemberStatusProcedure  = "/kontrib.v1.GroupService/SetMemberStatus"

	ContributionServiceSubmitContributionProcedure     = "/kontrib.v1.ContributionService/SubmitContribution"
	ContributionServiceConfirmContributionProcedure    = "/kontrib.v1.ContributionService/ConfirmContribution"
	ContributionServiceRejectContributionProcedure     = "/kontrib.v1.ContributionService/RejectContribution"
	ContributionServiceListGroupContributionsProcedure = "/kontrib.v1.ContributionService/ListGroupContributions"
	ContributionServiceListUserContributionsProcedure  = "/kontrib.v1.ContributionService/ListUserContributions"

	StatsServiceGetGroupStatsProcedure = "/kontrib.v1.StatsService/GetGroupStats"
	StatsServiceGetAdminStatsProcedure = "/kontrib.v1.StatsService/GetAdminStats"
	StatsServiceGetUserStatsProcedure  = "/kontrib.v1.StatsService/GetUserStats"
)

// PublicProcedures can be called without a bearer token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
	GroupServiceGetGroupByTokenProcedure,
}

type route struct {
	path    string
	handler http.Handler
}

func unary[Req, Res any](path string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) route {
	return route{path: path, handler: connect.NewUnaryHandler(path, fn, opts...)}
}

func serviceHandler(name string, routes ...route) (string, http.Handler) {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.path, r.handler)
	}
	return "/" + name + "/", mux
}

func withCodec[T any](codecOpt T, opts []T) []T {
	return append([]T{codecOpt}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler for the AuthService.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(JSONCodec{}), opts)
	return serviceHandler(AuthServiceName,
		unary(AuthServiceRegisterProcedure, svc.Register, opts),
		unary(AuthServiceLoginProcedure, svc.Login, opts),
	)
}

// NewGroupServiceHandler builds an HTTP handler for the GroupService.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(JSONCodec{}), opts)
	return serviceHandler(GroupServiceName,
		unary(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts),
		unary(GroupServiceGetGroupProcedure, svc.GetGroup, opts),
		unary(GroupServiceGetGroupByTokenProcedure, svc.GetGroupByToken, opts),
		unary(GroupServiceListAdminGroupsProcedure, svc.ListAdminGroups, opts),
		unary(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts),
		unary(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts),
		unary(GroupServiceListGroupMembersProcedure, svc.ListGroupMembers, opts),
		unary(GroupServiceListUserGroupsProcedure, svc.ListUserGroups, opts),
		unary(GroupServiceSetMemberStatusProcedure, svc.SetMemberStatus, opts),
	)
}

// NewContributionServiceHandler builds an HTTP handler for the ContributionService.
func NewContributionServiceHandler(svc *ContributionService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(JSONCodec{}), opts)
	return serviceHandler(ContributionServiceName,
		unary(ContributionServiceSubmitContributionProcedure, svc.SubmitContribution, opts),
		unary(ContributionServiceConfirmContributionProcedure, svc.ConfirmContribution, opts),
		unary(ContributionServiceRejectContributionProcedure, svc.RejectContribution, opts),
		unary(ContributionServiceListGroupContributionsProcedure, svc.ListGroupContributions, opts),
		unary(ContributionServiceListUserContributionsProcedure, svc.ListUserContributions, opts),
	)
}

// NewStatsServiceHandler builds an HTTP handler for the StatsService.
func NewStatsServiceHandler(svc *StatsService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec[connect.HandlerOption](connect.WithCodec(JSONCodec{}), opts)
	return serviceHandler(StatsServiceName,
		unary(StatsServiceGetGroupStatsProcedure, svc.GetGroupStats, opts),
		unary(StatsServiceGetAdminStatsProcedure, svc.GetAdminStats, opts),
		unary(StatsServiceGetUserStatsProcedure, svc.GetUserStats, opts),
	)
}
