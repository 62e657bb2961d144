// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Ragnerd/Kontrib/internal/models"
)

// Lookups return (nil, nil) when the record does not exist; callers decide
// what absence means. Creates return models.ErrConflict when a unique key
// (username, registration token, group+user membership) is already taken.

// UserReader reads user accounts.
type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupReader reads groups.
type GroupReader interface {
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	GetGroupByRegistrationToken(ctx context.Context, token string) (*models.Group, error)
	ListGroupsByAdmin(ctx context.Context, adminID string) ([]*models.Group, error)
}

// MembershipReader reads memberships.
type MembershipReader interface {
	GetMembership(ctx context.Context, id string) (*models.Membership, error)
	GetMembershipByGroupAndUser(ctx context.Context, groupID, userID string) (*models.Membership, error)
	ListMembershipsByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]*models.Membership, error)
}

// ContributionReader reads contributions. Lists are newest first.
type ContributionReader interface {
	GetContribution(ctx context.Context, id string) (*models.Contribution, error)
	ListContributionsByGroup(ctx context.Context, groupID string) ([]*models.Contribution, error)
	ListContributionsByUser(ctx context.Context, userID string) ([]*models.Contribution, error)
}

// Reader is every read operation of the store.
type Reader interface {
	UserReader
	GroupReader
	MembershipReader
	ContributionReader
}

// Tx is the view of the store inside a transaction. Besides reads it offers
// conditional writes for the denormalized totals: each takes the value the
// caller read earlier and fails with models.ErrConcurrencyConflict if the
// stored value has changed since.
type Tx interface {
	Reader

	CreateContribution(ctx context.Context, c *models.Contribution) error
	CreateMembership(ctx context.Context, m *models.Membership) error

	SetGroupCollected(ctx context.Context, groupID string, expected, next decimal.Decimal) error
	SetMembershipContributed(ctx context.Context, membershipID string, expected, next decimal.Decimal) error
	SetContributionStatus(ctx context.Context, contributionID string, expected, next models.ContributionStatus) error
}

// Store defines the interface for Kontrib storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger or the service layer.
type Store interface {
	Reader

	// CreateUser persists a new user. ID and CreatedAt are filled in when empty.
	CreateUser(ctx context.Context, user *models.User) error

	// CreateGroup persists a new group. ID, RegistrationToken, CreatedAt and a
	// zero CollectedAmount are filled in by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// UpdateGroup merges the admin-editable fields. Returns (nil, nil) if the
	// group does not exist.
	UpdateGroup(ctx context.Context, id string, update models.GroupUpdate) (*models.Group, error)

	// CreateMembership persists a new membership with a zero contributed amount.
	CreateMembership(ctx context.Context, m *models.Membership) error

	// SetMembershipStatus replaces a membership's status. Returns (nil, nil)
	// if the membership does not exist.
	SetMembershipStatus(ctx context.Context, membershipID string, status models.MembershipStatus) (*models.Membership, error)

	// InTx runs fn inside a single transaction. The transaction commits if fn
	// returns nil and rolls back otherwise, so no partial writes survive.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
