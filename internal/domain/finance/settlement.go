package finance

import "github.com/shopspring/decimal"

// SettlementStatus represents how far an obligation has been paid down
type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "PENDING" // Nothing paid yet
	SettlementStatusPartial SettlementStatus = "PARTIAL" // Partially paid, 0 < paid < total
	SettlementStatusPaid    SettlementStatus = "PAID"    // Fully paid, paid >= total
)

// IsValid checks if the status is a valid SettlementStatus
func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusPending, SettlementStatusPartial, SettlementStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of SettlementStatus
func (s SettlementStatus) String() string {
	return string(s)
}

// IsSettled returns true if the obligation is fully paid
func (s SettlementStatus) IsSettled() bool {
	return s == SettlementStatusPaid
}

// DeriveSettlementStatus derives the settlement status from total and paid
// amounts. It is the single source of truth for the status field: every write
// to total or paid must re-assert the stored status through this function so
// the stored value never drifts from the amounts.
func DeriveSettlementStatus(total, paid decimal.Decimal) SettlementStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return SettlementStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return SettlementStatusPartial
	default:
		return SettlementStatusPending
	}
}
