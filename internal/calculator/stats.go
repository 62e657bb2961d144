// Package calculator computes the read-side statistics of groups, admins and
// members. It is pure: callers load the records and pass them in.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/Ragnerd/Kontrib/internal/models"
)

var (
	two        = decimal.NewFromInt(2)
	twoHundred = decimal.NewFromInt(200)
)

// GroupStats summarizes one group.
type GroupStats struct {
	MemberCount     int
	CompletionRate  int // percent of target collected, rounded
	PendingPayments int // members below their equal share of the target
}

// AdminStats summarizes every group owned by one admin.
type AdminStats struct {
	TotalCollections decimal.Decimal
	ActiveMembers    int
	PendingPayments  int
	CompletionRate   int // percent of groups that reached their target
}

// UserStats summarizes one member across all groups.
type UserStats struct {
	TotalContributions decimal.Decimal
	GroupCount         int
}

// GroupForStats is a group together with all of its memberships.
type GroupForStats struct {
	Group   *models.Group
	Members []*models.Membership
}

// CompletionRate returns round(collected / target × 100), or 0 when the
// target is zero. Halves round up.
//
// The rate is floor((200·collected + target) / (2·target)), computed with an
// exact integer quotient so a ratio just below x.5 never rounds up.
func CompletionRate(collected, target decimal.Decimal) int {
	if !target.IsPositive() {
		return 0
	}
	num := collected.Mul(twoHundred).Add(target)
	q, r := num.QuoRem(target.Mul(two), 0)
	if r.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return int(q.IntPart())
}

// Progress is CompletionRate capped at 100, for progress bars.
func Progress(collected, target decimal.Decimal) int {
	rate := CompletionRate(collected, target)
	if rate > 100 {
		return 100
	}
	return rate
}

// IsPending reports whether a member who has paid contributed is still short
// of an equal share of target split across memberCount members.
//
// contributed < target / memberCount is evaluated as
// contributed × memberCount < target so no division rounding is involved.
func IsPending(contributed, target decimal.Decimal, memberCount int) bool {
	if memberCount <= 0 {
		return false
	}
	return contributed.Mul(decimal.NewFromInt(int64(memberCount))).LessThan(target)
}

// CalculateGroupStats computes member count, completion rate and pending
// payments for a group.
//
// Each member is expected to pay an equal share of the target. The share
// changes as members join, so the pending count can change without any
// payment being made.
func CalculateGroupStats(group *models.Group, members []*models.Membership) GroupStats {
	stats := GroupStats{
		MemberCount:    len(members),
		CompletionRate: CompletionRate(group.CollectedAmount, group.TargetAmount),
	}
	for _, m := range members {
		if IsPending(m.ContributedAmount, group.TargetAmount, len(members)) {
			stats.PendingPayments++
		}
	}
	return stats
}

// CalculateAdminStats aggregates group statistics across an admin's groups.
func CalculateAdminStats(groups []GroupForStats) AdminStats {
	stats := AdminStats{TotalCollections: decimal.Zero}
	completed := 0

	for _, g := range groups {
		stats.TotalCollections = stats.TotalCollections.Add(g.Group.CollectedAmount)
		for _, m := range g.Members {
			if m.Status == models.MembershipActive {
				stats.ActiveMembers++
			}
		}
		stats.PendingPayments += CalculateGroupStats(g.Group, g.Members).PendingPayments
		if g.Group.CollectedAmount.GreaterThanOrEqual(g.Group.TargetAmount) {
			completed++
		}
	}

	if len(groups) > 0 {
		stats.CompletionRate = CompletionRate(decimal.NewFromInt(int64(completed)), decimal.NewFromInt(int64(len(groups))))
	}
	return stats
}

// CalculateUserStats sums a member's reported contributions and counts the
// groups they are active in. Pending contributions are included since this
// is a display figure; failed ones are not.
func CalculateUserStats(contributions []*models.Contribution, memberships []*models.Membership) UserStats {
	stats := UserStats{TotalContributions: decimal.Zero}
	for _, c := range contributions {
		if c.Status == models.ContributionFailed {
			continue
		}
		stats.TotalContributions = stats.TotalContributions.Add(c.Amount)
	}
	for _, m := range memberships {
		if m.Status == models.MembershipActive {
			stats.GroupCount++
		}
	}
	return stats
}
