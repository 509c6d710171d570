package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sample struct {
	ID     uuid.UUID       `validate:"uuid_required"`
	Price  decimal.Decimal `validate:"decimal_nonneg"`
	Amount decimal.Decimal `validate:"decimal_positive"`
}

func TestValidateStruct(t *testing.T) {
	valid := sample{
		ID:     uuid.New(),
		Price:  decimal.Zero,
		Amount: decimal.NewFromInt(1),
	}

	tests := []struct {
		name      string
		input     sample
		wantField string
	}{
		{"valid", valid, ""},
		{"nil uuid", sample{Price: valid.Price, Amount: valid.Amount}, "sample.ID"},
		{"negative price", sample{ID: valid.ID, Price: decimal.NewFromInt(-1), Amount: valid.Amount}, "sample.Price"},
		{"zero amount", sample{ID: valid.ID, Price: valid.Price}, "sample.Amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %+v", errs[0])
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			if errs[0].FailedField != tt.wantField {
				t.Errorf("failed field = %q, want %q", errs[0].FailedField, tt.wantField)
			}
		})
	}
}
