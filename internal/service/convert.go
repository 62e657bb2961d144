package service

import (
	"github.com/Ragnerd/Kontrib/internal/calculator"
	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/views"
)

func toUser(u *models.User) *User {
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

func toGroup(g *models.Group) *Group {
	return &Group{
		ID:                g.ID,
		Name:              g.Name,
		Description:       g.Description,
		TargetAmount:      models.FormatAmount(g.TargetAmount),
		CollectedAmount:   models.FormatAmount(g.CollectedAmount),
		WhatsAppLink:      g.WhatsAppLink,
		RegistrationToken: g.RegistrationToken,
		Deadline:          g.Deadline,
		Status:            string(g.Status),
		AdminID:           g.AdminID,
		CreatedAt:         g.CreatedAt,
	}
}

func toGroupStats(s calculator.GroupStats) *GroupStats {
	return &GroupStats{
		MemberCount:     s.MemberCount,
		CompletionRate:  s.CompletionRate,
		PendingPayments: s.PendingPayments,
	}
}

func toGroupSummary(v *views.GroupWithStats) *GroupSummary {
	return &GroupSummary{
		Group:    toGroup(v.Group),
		Stats:    toGroupStats(v.Stats),
		Progress: v.Progress,
	}
}

func toMembership(m *models.Membership) *Membership {
	return &Membership{
		ID:                m.ID,
		GroupID:           m.GroupID,
		UserID:            m.UserID,
		ContributedAmount: models.FormatAmount(m.ContributedAmount),
		Status:            string(m.Status),
		JoinedAt:          m.JoinedAt,
	}
}

func toContribution(c *models.Contribution) *Contribution {
	return &Contribution{
		ID:             c.ID,
		GroupID:        c.GroupID,
		UserID:         c.UserID,
		Amount:         models.FormatAmount(c.Amount),
		Description:    c.Description,
		TransactionRef: c.TransactionRef,
		ProofOfPayment: c.ProofOfPayment,
		PaymentMethod:  c.PaymentMethod,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
	}
}

func toNamedContributions(list []*views.ContributionWithNames) []*Contribution {
	out := make([]*Contribution, len(list))
	for i, v := range list {
		c := toContribution(v.Contribution)
		c.UserName = v.UserName
		c.GroupName = v.GroupName
		out[i] = c
	}
	return out
}
