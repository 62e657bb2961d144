package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return withCodec[connect.ClientOption](connect.WithCodec(JSONCodec{}), opts)
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL
// (for example, http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient struct {
	createGroup      *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup         *connect.Client[GetGroupRequest, GetGroupResponse]
	getGroupByToken  *connect.Client[GetGroupByTokenRequest, GetGroupByTokenResponse]
	listAdminGroups  *connect.Client[ListAdminGroupsRequest, ListAdminGroupsResponse]
	updateGroup      *connect.Client[UpdateGroupRequest, UpdateGroupResponse]
	joinGroup        *connect.Client[JoinGroupRequest, JoinGroupResponse]
	listGroupMembers *connect.Client[ListGroupMembersRequest, ListGroupMembersResponse]
	listUserGroups   *connect.Client[ListUserGroupsRequest, ListUserGroupsResponse]
	setMemberStatus  *connect.Client[SetMemberStatusRequest, SetMemberStatusResponse]
}

// NewGroupServiceClient constructs a client for the GroupService.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:      connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		getGroupByToken:  connect.NewClient[GetGroupByTokenRequest, GetGroupByTokenResponse](httpClient, baseURL+GroupServiceGetGroupByTokenProcedure, opts...),
		listAdminGroups:  connect.NewClient[ListAdminGroupsRequest, ListAdminGroupsResponse](httpClient, baseURL+GroupServiceListAdminGroupsProcedure, opts...),
		updateGroup:      connect.NewClient[UpdateGroupRequest, UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		joinGroup:        connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
		listGroupMembers: connect.NewClient[ListGroupMembersRequest, ListGroupMembersResponse](httpClient, baseURL+GroupServiceListGroupMembersProcedure, opts...),
		listUserGroups:   connect.NewClient[ListUserGroupsRequest, ListUserGroupsResponse](httpClient, baseURL+GroupServiceListUserGroupsProcedure, opts...),
		setMemberStatus:  connect.NewClient[SetMemberStatusRequest, SetMemberStatusResponse](httpClient, baseURL+GroupServiceSetMemberStatusProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroupByToken(ctx context.Context, req *connect.Request[GetGroupByTokenRequest]) (*connect.Response[GetGroupByTokenResponse], error) {
	return c.getGroupByToken.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListAdminGroups(ctx context.Context, req *connect.Request[ListAdminGroupsRequest]) (*connect.Response[ListAdminGroupsResponse], error) {
	return c.listAdminGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroupMembers(ctx context.Context, req *connect.Request[ListGroupMembersRequest]) (*connect.Response[ListGroupMembersResponse], error) {
	return c.listGroupMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListUserGroups(ctx context.Context, req *connect.Request[ListUserGroupsRequest]) (*connect.Response[ListUserGroupsResponse], error) {
	return c.listUserGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SetMemberStatus(ctx context.Context, req *connect.Request[SetMemberStatusRequest]) (*connect.Response[SetMemberStatusResponse], error) {
	return c.setMemberStatus.CallUnary(ctx, req)
}

// ContributionServiceClient is a client for the ContributionService.
type ContributionServiceClient struct {
	submitContribution     *connect.Client[SubmitContributionRequest, SubmitContributionResponse]
	confirmContribution    *connect.Client[ConfirmContributionRequest, ConfirmContributionResponse]
	rejectContribution     *connect.Client[RejectContributionRequest, RejectContributionResponse]
	listGroupContributions *connect.Client[ListGroupContributionsRequest, ListGroupContributionsResponse]
	listUserContributions  *connect.Client[ListUserContributionsRequest, ListUserContributionsResponse]
}

// NewContributionServiceClient constructs a client for the ContributionService.
func NewContributionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ContributionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ContributionServiceClient{
		submitContribution:     connect.NewClient[SubmitContributionRequest, SubmitContributionResponse](httpClient, baseURL+ContributionServiceSubmitContributionProcedure, opts...),
		confirmContribution:    connect.NewClient[ConfirmContributionRequest, ConfirmContributionResponse](httpClient, baseURL+ContributionServiceConfirmContributionProcedure, opts...),
		rejectContribution:     connect.NewClient[RejectContributionRequest, RejectContributionResponse](httpClient, baseURL+ContributionServiceRejectContributionProcedure, opts...),
		listGroupContributions: connect.NewClient[ListGroupContributionsRequest, ListGroupContributionsResponse](httpClient, baseURL+ContributionServiceListGroupContributionsProcedure, opts...),
		listUserContributions:  connect.NewClient[ListUserContributionsRequest, ListUserContributionsResponse](httpClient, baseURL+ContributionServiceListUserContributionsProcedure, opts...),
	}
}

func (c *ContributionServiceClient) SubmitContribution(ctx context.Context, req *connect.Request[SubmitContributionRequest]) (*connect.Response[SubmitContributionResponse], error) {
	return c.submitContribution.CallUnary(ctx, req)
}

func (c *ContributionServiceClient) ConfirmContribution(ctx context.Context, req *connect.Request[ConfirmContributionRequest]) (*connect.Response[ConfirmContributionResponse], error) {
	return c.confirmContribution.CallUnary(ctx, req)
}

func (c *ContributionServiceClient) RejectContribution(ctx context.Context, req *connect.Request[RejectContributionRequest]) (*connect.Response[RejectContributionResponse], error) {
	return c.rejectContribution.CallUnary(ctx, req)
}

func (c *ContributionServiceClient) ListGroupContributions(ctx context.Context, req *connect.Request[ListGroupContributionsRequest]) (*connect.Response[ListGroupContributionsResponse], error) {
	return c.listGroupContributions.CallUnary(ctx, req)
}

func (c *ContributionServiceClient) ListUserContributions(ctx context.Context, req *connect.Request[ListUserContributionsRequest]) (*connect.Response[ListUserContributionsResponse], error) {
	return c.listUserContributions.CallUnary(ctx, req)
}

// StatsServiceClient is a client for the StatsService.
type StatsServiceClient struct {
	getGroupStats *connect.Client[GetGroupStatsRequest, GetGroupStatsResponse]
	getAdminStats *connect.Client[GetAdminStatsRequest, GetAdminStatsResponse]
	getUserStats  *connect.Client[GetUserStatsRequest, GetUserStatsResponse]
}

// NewStatsServiceClient constructs a client for the StatsService.
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *StatsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &StatsServiceClient{
		getGroupStats: connect.NewClient[GetGroupStatsRequest, GetGroupStatsResponse](httpClient, baseURL+StatsServiceGetGroupStatsProcedure, opts...),
		getAdminStats: connect.NewClient[GetAdminStatsRequest, GetAdminStatsResponse](httpClient, baseURL+StatsServiceGetAdminStatsProcedure, opts...),
		getUserStats:  connect.NewClient[GetUserStatsRequest, GetUserStatsResponse](httpClient, baseURL+StatsServiceGetUserStatsProcedure, opts...),
	}
}

func (c *StatsServiceClient) GetGroupStats(ctx context.Context, req *connect.Request[GetGroupStatsRequest]) (*connect.Response[GetGroupStatsResponse], error) {
	return c.getGroupStats.CallUnary(ctx, req)
}

func (c *StatsServiceClient) GetAdminStats(ctx context.Context, req *connect.Request[GetAdminStatsRequest]) (*connect.Response[GetAdminStatsResponse], error) {
	return c.getAdminStats.CallUnary(ctx, req)
}

func (c *StatsServiceClient) GetUserStats(ctx context.Context, req *connect.Request[GetUserStatsRequest]) (*connect.Response[GetUserStatsResponse], error) {
	return c.getUserStats.CallUnary(ctx, req)
}
