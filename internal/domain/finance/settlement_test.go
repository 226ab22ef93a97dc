package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveSettlementStatus(t *testing.T) {
	tests := []struct {
		name  string
		total decimal.Decimal
		paid  decimal.Decimal
		want  SettlementStatus
	}{
		{"nothing paid", decimal.NewFromInt(10000000), decimal.Zero, SettlementStatusPending},
		{"partially paid", decimal.NewFromInt(10000000), decimal.NewFromInt(4000000), SettlementStatusPartial},
		{"one unit short", decimal.NewFromInt(10000000), decimal.NewFromInt(9999999), SettlementStatusPartial},
		{"exactly paid", decimal.NewFromInt(10000000), decimal.NewFromInt(10000000), SettlementStatusPaid},
		{"paid above total", decimal.NewFromInt(10000000), decimal.NewFromInt(10000001), SettlementStatusPaid},
		{"zero total zero paid", decimal.Zero, decimal.Zero, SettlementStatusPaid},
		{"fractional partial", decimal.NewFromFloat(10.50), decimal.NewFromFloat(0.01), SettlementStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSettlementStatus(tt.total, tt.paid))
		})
	}
}

func TestSettlementStatus_IsValid(t *testing.T) {
	assert.True(t, SettlementStatusPending.IsValid())
	assert.True(t, SettlementStatusPartial.IsValid())
	assert.True(t, SettlementStatusPaid.IsValid())
	assert.False(t, SettlementStatus("SETTLED").IsValid())
}
