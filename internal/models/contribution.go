package models

import "github.com/shopspring/decimal"

// ContributionStatus is the state of a reported payment.
type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "pending"
	ContributionConfirmed ContributionStatus = "confirmed"
	ContributionFailed    ContributionStatus = "failed"
)

// PaymentMethods lists the payment channels members can report.
// An empty method is also accepted.
var PaymentMethods = []string{
	"bank_transfer",
	"mobile_money",
	"zelle",
	"cashapp",
	"venmo",
	"paypal",
	"wire_transfer",
	"crypto",
	"cash",
}

// ValidPaymentMethod reports whether m is empty or one of PaymentMethods.
func ValidPaymentMethod(m string) bool {
	if m == "" {
		return true
	}
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Contribution is a single ledger entry: one user reporting a payment into one group.
// GroupID and UserID never change after creation.
type Contribution struct {
	ID      string
	GroupID string
	UserID  string

	// Amount is always positive.
	Amount decimal.Decimal

	Description    string
	TransactionRef string

	// ProofOfPayment is a reference to an uploaded receipt (path or encoded image).
	ProofOfPayment string

	PaymentMethod string

	Status ContributionStatus

	// CreatedAt is the Unix timestamp when the contribution was recorded.
	CreatedAt int64
}

// Counted reports whether the contribution is part of the denormalized totals.
func (c *Contribution) Counted() bool {
	return c.Status == ContributionConfirmed
}
