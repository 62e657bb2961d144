package models

import "github.com/shopspring/decimal"

// GroupStatus is the lifecycle state of a group.
type GroupStatus string

const (
	GroupActive    GroupStatus = "active"
	GroupCompleted GroupStatus = "completed"
	GroupPaused    GroupStatus = "paused"
)

// Valid reports whether s is a known group status.
func (s GroupStatus) Valid() bool {
	switch s {
	case GroupActive, GroupCompleted, GroupPaused:
		return true
	}
	return false
}

// Group represents a fundraising campaign owned by an admin.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Chidi's Wedding").
	Name string

	// Description is optional free text.
	Description string

	// TargetAmount is the amount the group is trying to raise.
	TargetAmount decimal.Decimal

	// CollectedAmount is the running sum of confirmed contributions.
	// Written only by the ledger.
	CollectedAmount decimal.Decimal

	// WhatsAppLink is an optional link to the group's discussion chat.
	WhatsAppLink string

	// RegistrationToken is the opaque value in the public join URL (unique).
	RegistrationToken string

	// Deadline is the Unix timestamp the group should be funded by.
	// Zero means no deadline.
	Deadline int64

	// Status is active, completed or paused.
	Status GroupStatus

	// AdminID is the user who created and manages the group.
	AdminID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupUpdate carries the admin-editable fields of a group.
// Nil fields are left unchanged. The collected amount is deliberately absent.
type GroupUpdate struct {
	Name         *string
	Description  *string
	WhatsAppLink *string
	Deadline     *int64
	Status       *GroupStatus
}

// Apply merges the non-nil fields of u into g.
func (u GroupUpdate) Apply(g *Group) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.WhatsAppLink != nil {
		g.WhatsAppLink = *u.WhatsAppLink
	}
	if u.Deadline != nil {
		g.Deadline = *u.Deadline
	}
	if u.Status != nil {
		g.Status = *u.Status
	}
}
