package models

import "github.com/shopspring/decimal"

// MembershipStatus is the state of a user's participation in a group.
// Joining creates an active membership; the group admin may move it to
// pending or inactive and back. Only active memberships count towards the
// active-member and group-count statistics.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipPending  MembershipStatus = "pending"
	MembershipInactive MembershipStatus = "inactive"
)

func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipActive, MembershipPending, MembershipInactive:
		return true
	}
	return false
}

// Membership links one user to one group and tracks what they have paid in.
// There is at most one membership per (GroupID, UserID) pair.
type Membership struct {
	ID      string
	GroupID string
	UserID  string

	// ContributedAmount is the running sum of this user's confirmed
	// contributions to the group. Written only by the ledger.
	ContributedAmount decimal.Decimal

	Status MembershipStatus

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64
}
