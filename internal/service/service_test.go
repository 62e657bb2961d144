package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ragnerd/Kontrib/internal/auth"
	"github.com/Ragnerd/Kontrib/internal/ledger"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage/sqlite"
)

type testClients struct {
	auth          *AuthServiceClient
	groups        *GroupServiceClient
	contributions *ContributionServiceClient
	stats         *StatsServiceClient
}

// setupTestServer serves every service from a temp database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	Mount(mux, Deps{
		Store:         store,
		Engine:        ledger.New(store, ledger.WithLogger(logger)),
		Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWTManager:    auth.NewJWTManager("test-secret", time.Hour),
		Logger:        logger,
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		auth:          NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:        NewGroupServiceClient(http.DefaultClient, server.URL),
		contributions: NewContributionServiceClient(http.DefaultClient, server.URL),
		stats:         NewStatsServiceClient(http.DefaultClient, server.URL),
	}
}

// as builds a request carrying token.
func as[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got success", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

type session struct {
	user  *User
	token string
}

func (c *testClients) register(t *testing.T, username, role string) session {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&RegisterRequest{
		Username: username,
		Password: "password123",
		FullName: username + " Doe",
		Role:     role,
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return session{user: resp.Msg.User, token: resp.Msg.Token}
}

func (c *testClients) createGroup(t *testing.T, admin session, name, target string) *GroupSummary {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), as(admin.token, &CreateGroupRequest{
		Name:         name,
		TargetAmount: target,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func (c *testClients) join(t *testing.T, member session, token string) {
	t.Helper()
	if _, err := c.groups.JoinGroup(context.Background(), as(member.token, &JoinGroupRequest{RegistrationToken: token})); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
}

func (c *testClients) pay(t *testing.T, member session, groupID, amount string) *Contribution {
	t.Helper()
	resp, err := c.contributions.SubmitContribution(context.Background(), as(member.token, &SubmitContributionRequest{
		GroupID:       groupID,
		Amount:        amount,
		PaymentMethod: "mobile_money",
	}))
	if err != nil {
		t.Fatalf("SubmitContribution(%s) failed: %v", amount, err)
	}
	return resp.Msg.Contribution
}

func TestRegisterAndLogin(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "amina", "admin")
	if admin.token == "" {
		t.Fatal("expected a token")
	}
	if admin.user.Role != "admin" {
		t.Errorf("role: expected admin, got %s", admin.user.Role)
	}

	member := c.register(t, "baba", "")
	if member.user.Role != "member" {
		t.Errorf("role: expected member by default, got %s", member.user.Role)
	}

	_, err := c.auth.Register(ctx, connect.NewRequest(&RegisterRequest{Username: "amina", Password: "password123", FullName: "Other"}))
	expectCode(t, err, connect.CodeAlreadyExists)

	_, err = c.auth.Register(ctx, connect.NewRequest(&RegisterRequest{Username: "short", Password: "123", FullName: "Short"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	resp, err := c.auth.Login(ctx, connect.NewRequest(&LoginRequest{Username: "amina", Password: "password123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.ID != admin.user.ID || resp.Msg.Token == "" {
		t.Errorf("unexpected login response: %+v", resp.Msg)
	}

	_, err = c.auth.Login(ctx, connect.NewRequest(&LoginRequest{Username: "amina", Password: "wrong-password"}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestContributionScenario(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	a := c.register(t, "ada", "")
	b := c.register(t, "bayo", "")

	group := c.createGroup(t, admin, "Class reunion", "1000")
	if group.Group.CollectedAmount != "0.00" || group.Group.TargetAmount != "1000.00" {
		t.Errorf("new group amounts: %s / %s", group.Group.CollectedAmount, group.Group.TargetAmount)
	}
	if group.Group.RegistrationToken == "" {
		t.Fatal("expected a registration token")
	}

	// The join page resolves the token before the visitor has an account.
	byToken, err := c.groups.GetGroupByToken(ctx, connect.NewRequest(&GetGroupByTokenRequest{
		RegistrationToken: group.Group.RegistrationToken,
	}))
	if err != nil {
		t.Fatalf("GetGroupByToken failed: %v", err)
	}
	if byToken.Msg.Group.Group.ID != group.Group.ID {
		t.Errorf("token resolved to %s, want %s", byToken.Msg.Group.Group.ID, group.Group.ID)
	}

	c.join(t, a, group.Group.RegistrationToken)
	c.join(t, b, group.Group.RegistrationToken)

	paid := c.pay(t, a, group.Group.ID, "300.00")
	if paid.Status != "confirmed" {
		t.Errorf("status: expected confirmed, got %s", paid.Status)
	}

	stats, err := c.stats.GetGroupStats(ctx, as(admin.token, &GetGroupStatsRequest{GroupID: group.Group.ID}))
	if err != nil {
		t.Fatalf("GetGroupStats failed: %v", err)
	}
	if stats.Msg.Stats.CompletionRate != 30 || stats.Msg.Stats.PendingPayments != 2 {
		t.Errorf("after 300: %+v", stats.Msg.Stats)
	}

	c.pay(t, a, group.Group.ID, "250.00")

	got, err := c.groups.GetGroup(ctx, as(b.token, &GetGroupRequest{GroupID: group.Group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Msg.Group.Group.CollectedAmount != "550.00" {
		t.Errorf("collected: expected 550.00, got %s", got.Msg.Group.Group.CollectedAmount)
	}
	if got.Msg.Group.Stats.CompletionRate != 55 || got.Msg.Group.Stats.PendingPayments != 1 {
		t.Errorf("after 550: %+v", got.Msg.Group.Stats)
	}
	if got.Msg.Group.Progress != 55 {
		t.Errorf("progress: expected 55, got %d", got.Msg.Group.Progress)
	}

	members, err := c.groups.ListGroupMembers(ctx, as(admin.token, &ListGroupMembersRequest{GroupID: group.Group.ID}))
	if err != nil {
		t.Fatalf("ListGroupMembers failed: %v", err)
	}
	contributed := map[string]string{}
	for _, m := range members.Msg.Members {
		contributed[m.User.Username] = m.Membership.ContributedAmount
	}
	if contributed["ada"] != "550.00" || contributed["bayo"] != "0.00" {
		t.Errorf("unexpected contributed amounts: %v", contributed)
	}

	list, err := c.contributions.ListGroupContributions(ctx, as(admin.token, &ListGroupContributionsRequest{GroupID: group.Group.ID}))
	if err != nil {
		t.Fatalf("ListGroupContributions failed: %v", err)
	}
	if len(list.Msg.Contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(list.Msg.Contributions))
	}
	for _, contribution := range list.Msg.Contributions {
		if contribution.UserName != "ada Doe" || contribution.GroupName != "Class reunion" {
			t.Errorf("names: %q / %q", contribution.UserName, contribution.GroupName)
		}
	}

	userStats, err := c.stats.GetUserStats(ctx, as(a.token, &GetUserStatsRequest{}))
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if userStats.Msg.Stats.TotalContributions != "550.00" || userStats.Msg.Stats.GroupCount != 1 {
		t.Errorf("user stats: %+v", userStats.Msg.Stats)
	}

	adminStats, err := c.stats.GetAdminStats(ctx, as(admin.token, &GetAdminStatsRequest{}))
	if err != nil {
		t.Fatalf("GetAdminStats failed: %v", err)
	}
	if adminStats.Msg.Stats.TotalCollections != "550.00" || adminStats.Msg.Stats.ActiveMembers != 2 || adminStats.Msg.Stats.PendingPayments != 1 {
		t.Errorf("admin stats: %+v", adminStats.Msg.Stats)
	}

	groups, err := c.groups.ListUserGroups(ctx, as(a.token, &ListUserGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListUserGroups failed: %v", err)
	}
	if len(groups.Msg.Groups) != 1 || groups.Msg.Groups[0].Group.ID != group.Group.ID {
		t.Errorf("unexpected user groups: %+v", groups.Msg.Groups)
	}
}

func TestPendingContributionReview(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	member := c.register(t, "chioma", "")
	group := c.createGroup(t, admin, "Burial support", "500")
	c.join(t, member, group.Group.RegistrationToken)

	submit := func(amount string) *Contribution {
		resp, err := c.contributions.SubmitContribution(ctx, as(member.token, &SubmitContributionRequest{
			GroupID:           group.Group.ID,
			Amount:            amount,
			TransactionRef:    "TX-" + amount,
			AwaitConfirmation: true,
		}))
		if err != nil {
			t.Fatalf("SubmitContribution failed: %v", err)
		}
		return resp.Msg.Contribution
	}

	pending := submit("200")
	if pending.Status != "pending" {
		t.Fatalf("status: expected pending, got %s", pending.Status)
	}

	collected := func() string {
		resp, err := c.groups.GetGroup(ctx, as(admin.token, &GetGroupRequest{GroupID: group.Group.ID}))
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		return resp.Msg.Group.Group.CollectedAmount
	}
	if got := collected(); got != "0.00" {
		t.Errorf("pending contribution counted: collected %s", got)
	}

	_, err := c.contributions.ConfirmContribution(ctx, as(member.token, &ConfirmContributionRequest{ContributionID: pending.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	for i := 0; i < 2; i++ {
		resp, err := c.contributions.ConfirmContribution(ctx, as(admin.token, &ConfirmContributionRequest{ContributionID: pending.ID}))
		if err != nil {
			t.Fatalf("ConfirmContribution #%d failed: %v", i+1, err)
		}
		if resp.Msg.Contribution.Status != "confirmed" {
			t.Errorf("status: expected confirmed, got %s", resp.Msg.Contribution.Status)
		}
	}
	if got := collected(); got != "200.00" {
		t.Errorf("collected: expected 200.00 after confirming twice, got %s", got)
	}

	_, err = c.contributions.RejectContribution(ctx, as(admin.token, &RejectContributionRequest{ContributionID: pending.ID}))
	expectCode(t, err, connect.CodeInvalidArgument)

	doubtful := submit("50")
	rejected, err := c.contributions.RejectContribution(ctx, as(admin.token, &RejectContributionRequest{ContributionID: doubtful.ID}))
	if err != nil {
		t.Fatalf("RejectContribution failed: %v", err)
	}
	if rejected.Msg.Contribution.Status != "failed" {
		t.Errorf("status: expected failed, got %s", rejected.Msg.Contribution.Status)
	}
	if got := collected(); got != "200.00" {
		t.Errorf("rejected contribution counted: collected %s", got)
	}

	_, err = c.contributions.ConfirmContribution(ctx, as(admin.token, &ConfirmContributionRequest{ContributionID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)

	mine, err := c.contributions.ListUserContributions(ctx, as(member.token, &ListUserContributionsRequest{}))
	if err != nil {
		t.Fatalf("ListUserContributions failed: %v", err)
	}
	if len(mine.Msg.Contributions) != 2 {
		t.Errorf("expected 2 contributions, got %d", len(mine.Msg.Contributions))
	}
}

func TestAdminRecordsPaymentForMember(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	member := c.register(t, "dapo", "")
	other := c.register(t, "efe", "")
	group := c.createGroup(t, admin, "Harvest", "100")
	c.join(t, member, group.Group.RegistrationToken)
	c.join(t, other, group.Group.RegistrationToken)

	resp, err := c.contributions.SubmitContribution(ctx, as(admin.token, &SubmitContributionRequest{
		GroupID:       group.Group.ID,
		UserID:        member.user.ID,
		Amount:        "40",
		PaymentMethod: "cash",
	}))
	if err != nil {
		t.Fatalf("SubmitContribution on behalf failed: %v", err)
	}
	if resp.Msg.Contribution.UserID != member.user.ID {
		t.Errorf("contribution recorded for %s, want %s", resp.Msg.Contribution.UserID, member.user.ID)
	}

	_, err = c.contributions.SubmitContribution(ctx, as(other.token, &SubmitContributionRequest{
		GroupID: group.Group.ID,
		UserID:  member.user.ID,
		Amount:  "40",
	}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestErrorCodes(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	member := c.register(t, "femi", "")
	outsider := c.register(t, "gozie", "")
	group := c.createGroup(t, admin, "Church roof", "1000")
	c.join(t, member, group.Group.RegistrationToken)

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"no token", func() error {
			_, err := c.groups.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: group.Group.ID}))
			return err
		}, connect.CodeUnauthenticated},
		{"bad token", func() error {
			_, err := c.groups.GetGroup(ctx, as("forged", &GetGroupRequest{GroupID: group.Group.ID}))
			return err
		}, connect.CodeUnauthenticated},
		{"member creates group", func() error {
			_, err := c.groups.CreateGroup(ctx, as(member.token, &CreateGroupRequest{Name: "Mine", TargetAmount: "10"}))
			return err
		}, connect.CodePermissionDenied},
		{"outsider reads group", func() error {
			_, err := c.groups.GetGroup(ctx, as(outsider.token, &GetGroupRequest{GroupID: group.Group.ID}))
			return err
		}, connect.CodePermissionDenied},
		{"member updates group", func() error {
			name := "Renamed"
			_, err := c.groups.UpdateGroup(ctx, as(member.token, &UpdateGroupRequest{GroupID: group.Group.ID, Name: &name}))
			return err
		}, connect.CodePermissionDenied},
		{"unknown group", func() error {
			_, err := c.groups.GetGroup(ctx, as(admin.token, &GetGroupRequest{GroupID: "missing"}))
			return err
		}, connect.CodeNotFound},
		{"unknown token", func() error {
			_, err := c.groups.GetGroupByToken(ctx, connect.NewRequest(&GetGroupByTokenRequest{RegistrationToken: "missing"}))
			return err
		}, connect.CodeNotFound},
		{"join twice", func() error {
			_, err := c.groups.JoinGroup(ctx, as(member.token, &JoinGroupRequest{GroupID: group.Group.ID}))
			return err
		}, connect.CodeAlreadyExists},
		{"outsider pays", func() error {
			_, err := c.contributions.SubmitContribution(ctx, as(outsider.token, &SubmitContributionRequest{GroupID: group.Group.ID, Amount: "5"}))
			return err
		}, connect.CodeFailedPrecondition},
		{"zero amount", func() error {
			_, err := c.contributions.SubmitContribution(ctx, as(member.token, &SubmitContributionRequest{GroupID: group.Group.ID, Amount: "0"}))
			return err
		}, connect.CodeInvalidArgument},
		{"three decimals", func() error {
			_, err := c.contributions.SubmitContribution(ctx, as(member.token, &SubmitContributionRequest{GroupID: group.Group.ID, Amount: "1.234"}))
			return err
		}, connect.CodeInvalidArgument},
		{"unknown payment method", func() error {
			_, err := c.contributions.SubmitContribution(ctx, as(member.token, &SubmitContributionRequest{GroupID: group.Group.ID, Amount: "5", PaymentMethod: "barter"}))
			return err
		}, connect.CodeInvalidArgument},
		{"member asks for admin stats", func() error {
			_, err := c.stats.GetAdminStats(ctx, as(member.token, &GetAdminStatsRequest{}))
			return err
		}, connect.CodePermissionDenied},
		{"bad status", func() error {
			status := "archived"
			_, err := c.groups.UpdateGroup(ctx, as(admin.token, &UpdateGroupRequest{GroupID: group.Group.ID, Status: &status}))
			return err
		}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCode(t, tt.call(), tt.want)
		})
	}
}

func TestUpdateGroup(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	group := c.createGroup(t, admin, "Old name", "300")

	name := "New name"
	status := "paused"
	resp, err := c.groups.UpdateGroup(ctx, as(admin.token, &UpdateGroupRequest{
		GroupID: group.Group.ID,
		Name:    &name,
		Status:  &status,
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	updated := resp.Msg.Group.Group
	if updated.Name != "New name" || updated.Status != "paused" {
		t.Errorf("unexpected update: %+v", updated)
	}
	if updated.TargetAmount != "300.00" || updated.CollectedAmount != "0.00" {
		t.Errorf("amounts changed by update: %s / %s", updated.TargetAmount, updated.CollectedAmount)
	}

	list, err := c.groups.ListAdminGroups(ctx, as(admin.token, &ListAdminGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListAdminGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 1 || list.Msg.Groups[0].Group.Name != "New name" {
		t.Errorf("unexpected admin groups: %+v", list.Msg.Groups)
	}
}

func TestSetMemberStatus(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	admin := c.register(t, "admin", "admin")
	member := c.register(t, "efe", "member")
	other := c.register(t, "femi", "member")
	group := c.createGroup(t, admin, "Savings circle", "600")
	c.join(t, member, group.Group.RegistrationToken)
	c.join(t, other, group.Group.RegistrationToken)

	t.Run("member cannot change status", func(t *testing.T) {
		_, err := c.groups.SetMemberStatus(ctx, as(member.token, &SetMemberStatusRequest{
			GroupID: group.Group.ID, UserID: other.user.ID, Status: "inactive",
		}))
		expectCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := c.groups.SetMemberStatus(ctx, as(admin.token, &SetMemberStatusRequest{
			GroupID: group.Group.ID, UserID: member.user.ID, Status: "banned",
		}))
		expectCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("admin deactivates a member", func(t *testing.T) {
		resp, err := c.groups.SetMemberStatus(ctx, as(admin.token, &SetMemberStatusRequest{
			GroupID: group.Group.ID, UserID: member.user.ID, Status: "inactive",
		}))
		if err != nil {
			t.Fatalf("SetMemberStatus failed: %v", err)
		}
		if resp.Msg.Membership.Status != "inactive" {
			t.Errorf("status: got %s, want inactive", resp.Msg.Membership.Status)
		}

		stats, err := c.stats.GetAdminStats(ctx, as(admin.token, &GetAdminStatsRequest{}))
		if err != nil {
			t.Fatalf("GetAdminStats failed: %v", err)
		}
		if stats.Msg.Stats.ActiveMembers != 1 {
			t.Errorf("ActiveMembers = %d, want 1", stats.Msg.Stats.ActiveMembers)
		}
	})
}

func TestConnectErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{models.Invalid("amount", "bad"), connect.CodeInvalidArgument},
		{fmt.Errorf("membership: %w", models.ErrConflict), connect.CodeAlreadyExists},
		{fmt.Errorf("group: %w", models.ErrNotFound), connect.CodeNotFound},
		{models.ErrNotMember, connect.CodeFailedPrecondition},
		{fmt.Errorf("apply: %w", models.ErrConcurrencyConflict), connect.CodeAborted},
		{models.ErrForbidden, connect.CodePermissionDenied},
		{auth.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("disk on fire"), connect.CodeInternal},
		{connect.NewError(connect.CodeUnavailable, errors.New("busy")), connect.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := connect.CodeOf(connectError(tt.err)); got != tt.want {
				t.Errorf("connectError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
