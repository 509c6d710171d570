package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSaleOwed(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  string
	}{
		{"unpaid", "50.00", "0", "50.00"},
		{"partial", "50.00", "20.50", "29.50"},
		{"settled", "50.00", "50.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := Sale{
				TotalPrice: decimal.RequireFromString(tt.total),
				AmountPaid: decimal.RequireFromString(tt.paid),
			}
			if got := sale.Owed(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Owed() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSaleStatusFor(t *testing.T) {
	sale := Sale{TotalPrice: decimal.RequireFromString("100.00")}

	tests := []struct {
		paid string
		want SaleStatus
	}{
		{"0", SalePending},
		{"99.99", SalePending},
		{"100.00", SalePaid},
	}

	for _, tt := range tests {
		if got := sale.StatusFor(decimal.RequireFromString(tt.paid)); got != tt.want {
			t.Errorf("StatusFor(%s) = %s, want %s", tt.paid, got, tt.want)
		}
	}
}
