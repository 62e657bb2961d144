// Package models defines the core domain models for Kontrib.
//
// # Models
//
//   - User: an account, either an admin (creates groups) or a member (joins them)
//   - Group: a fundraising campaign with a target amount and a running collected total
//   - Membership: one user's participation in one group, with their running total
//   - Contribution: a single reported payment into a group
//
// # Money
//
// Every monetary field is a decimal.Decimal and is persisted as a string with
// exactly two fractional digits. Binary floating point is never used for money,
// so repeated additions stay exact.
//
// # Denormalized totals
//
// Group.CollectedAmount and Membership.ContributedAmount duplicate the sum of the
// confirmed contributions they cover. Only the ledger package writes them, inside
// the same transaction that records or confirms the contribution.
//
// # Relationships
//
// Relationships use ID strings rather than pointers:
//
//	User 1--* Group (as admin)
//	User *--* Group (via Membership)
//	Group 1--* Contribution
//	User 1--* Contribution
package models
