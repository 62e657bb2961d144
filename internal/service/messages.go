package service

// Wire messages. Field names follow the protobuf JSON mapping (lowerCamelCase)
// and money travels as decimal strings with two fractional digits.

// User is the public view of an account; the password hash never leaves the server.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
	CreatedAt   int64  `json:"createdAt"`
}

type Group struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	TargetAmount      string `json:"targetAmount"`
	CollectedAmount   string `json:"collectedAmount"`
	WhatsAppLink      string `json:"whatsappLink,omitempty"`
	RegistrationToken string `json:"registrationToken"`
	Deadline          int64  `json:"deadline,omitempty"`
	Status            string `json:"status"`
	AdminID           string `json:"adminId"`
	CreatedAt         int64  `json:"createdAt"`
}

type GroupStats struct {
	MemberCount     int `json:"memberCount"`
	CompletionRate  int `json:"completionRate"`
	PendingPayments int `json:"pendingPayments"`
}

// GroupSummary is a group with its statistics and display progress (0-100).
type GroupSummary struct {
	Group    *Group      `json:"group"`
	Stats    *GroupStats `json:"stats"`
	Progress int         `json:"progress"`
}

type Membership struct {
	ID                string `json:"id"`
	GroupID           string `json:"groupId"`
	UserID            string `json:"userId"`
	ContributedAmount string `json:"contributedAmount"`
	Status            string `json:"status"`
	JoinedAt          int64  `json:"joinedAt"`
}

type Member struct {
	Membership *Membership `json:"membership"`
	User       *User       `json:"user"`
}

type UserGroup struct {
	Membership *Membership `json:"membership"`
	Group      *Group      `json:"group"`
}

type Contribution struct {
	ID             string `json:"id"`
	GroupID        string `json:"groupId"`
	UserID         string `json:"userId"`
	Amount         string `json:"amount"`
	Description    string `json:"description,omitempty"`
	TransactionRef string `json:"transactionRef,omitempty"`
	ProofOfPayment string `json:"proofOfPayment,omitempty"`
	PaymentMethod  string `json:"paymentMethod,omitempty"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"createdAt"`
	UserName       string `json:"userName,omitempty"`
	GroupName      string `json:"groupName,omitempty"`
}

type AdminStats struct {
	TotalCollections string `json:"totalCollections"`
	ActiveMembers    int    `json:"activeMembers"`
	PendingPayments  int    `json:"pendingPayments"`
	CompletionRate   int    `json:"completionRate"`
}

type UserStats struct {
	TotalContributions string `json:"totalContributions"`
	GroupCount         int    `json:"groupCount"`
}

// AuthService

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role,omitempty"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// GroupService

type CreateGroupRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	TargetAmount string `json:"targetAmount"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
	Deadline     int64  `json:"deadline,omitempty"`
}

type CreateGroupResponse struct {
	Group *GroupSummary `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *GroupSummary `json:"group"`
}

type GetGroupByTokenRequest struct {
	RegistrationToken string `json:"registrationToken"`
}

type GetGroupByTokenResponse struct {
	Group *GroupSummary `json:"group"`
}

type ListAdminGroupsRequest struct{}

type ListAdminGroupsResponse struct {
	Groups []*GroupSummary `json:"groups"`
}

// UpdateGroupRequest changes only the fields that are set.
type UpdateGroupRequest struct {
	GroupID      string  `json:"groupId"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	WhatsAppLink *string `json:"whatsappLink,omitempty"`
	Deadline     *int64  `json:"deadline,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type UpdateGroupResponse struct {
	Group *GroupSummary `json:"group"`
}

// JoinGroupRequest identifies the group by ID or by registration token.
type JoinGroupRequest struct {
	GroupID           string `json:"groupId,omitempty"`
	RegistrationToken string `json:"registrationToken,omitempty"`
}

type JoinGroupResponse struct {
	Membership *Membership `json:"membership"`
}

// SetMemberStatusRequest moves a member to active, pending or inactive.
type SetMemberStatusRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"`
}

type SetMemberStatusResponse struct {
	Membership *Membership `json:"membership"`
}

type ListGroupMembersRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupMembersResponse struct {
	Members []*Member `json:"members"`
}

type ListUserGroupsRequest struct{}

type ListUserGroupsResponse struct {
	Groups []*UserGroup `json:"groups"`
}

// ContributionService

// SubmitContributionRequest reports a payment. UserID defaults to the caller;
// the group admin may record a payment on behalf of a member. With
// AwaitConfirmation the contribution stays pending until an admin confirms it.
type SubmitContributionRequest struct {
	GroupID           string `json:"groupId"`
	UserID            string `json:"userId,omitempty"`
	Amount            string `json:"amount"`
	Description       string `json:"description,omitempty"`
	TransactionRef    string `json:"transactionRef,omitempty"`
	ProofOfPayment    string `json:"proofOfPayment,omitempty"`
	PaymentMethod     string `json:"paymentMethod,omitempty"`
	AwaitConfirmation bool   `json:"awaitConfirmation,omitempty"`
}

type SubmitContributionResponse struct {
	Contribution *Contribution `json:"contribution"`
}

type ConfirmContributionRequest struct {
	ContributionID string `json:"contributionId"`
}

type ConfirmContributionResponse struct {
	Contribution *Contribution `json:"contribution"`
}

type RejectContributionRequest struct {
	ContributionID string `json:"contributionId"`
}

type RejectContributionResponse struct {
	Contribution *Contribution `json:"contribution"`
}

type ListGroupContributionsRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupContributionsResponse struct {
	Contributions []*Contribution `json:"contributions"`
}

type ListUserContributionsRequest struct{}

type ListUserContributionsResponse struct {
	Contributions []*Contribution `json:"contributions"`
}

// StatsService

type GetGroupStatsRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupStatsResponse struct {
	Stats *GroupStats `json:"stats"`
}

type GetAdminStatsRequest struct{}

type GetAdminStatsResponse struct {
	Stats *AdminStats `json:"stats"`
}

type GetUserStatsRequest struct{}

type GetUserStatsResponse struct {
	Stats *UserStats `json:"stats"`
}
