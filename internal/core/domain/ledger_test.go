package domain_test

import (
	"testing"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestLedgerEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.LedgerEntry
		wantErr error
	}{
		{
			name: "valid credit",
			entry: domain.LedgerEntry{
				Type:        domain.Credit,
				Amount:      decimal.NewFromInt(1000),
				Description: "Invoice A",
				Category:    domain.CategoryRevenue,
			},
		},
		{
			name: "unknown category is accepted",
			entry: domain.LedgerEntry{
				Type:        domain.Debit,
				Amount:      decimal.NewFromInt(10),
				Description: "Misc",
				Category:    domain.Category("coffee"),
			},
		},
		{
			name: "zero amount",
			entry: domain.LedgerEntry{
				Type:        domain.Debit,
				Amount:      decimal.Zero,
				Description: "Rent",
				Category:    domain.CategoryRent,
			},
			wantErr: domain.ErrEntryAmountNotPositive,
		},
		{
			name: "negative amount",
			entry: domain.LedgerEntry{
				Type:        domain.Debit,
				Amount:      decimal.NewFromInt(-5),
				Description: "Rent",
			},
			wantErr: domain.ErrEntryAmountNotPositive,
		},
		{
			name: "blank description",
			entry: domain.LedgerEntry{
				Type:        domain.Credit,
				Amount:      decimal.NewFromInt(5),
				Description: "   ",
			},
			wantErr: domain.ErrEntryDescriptionEmpty,
		},
		{
			name: "bad type",
			entry: domain.LedgerEntry{
				Type:        domain.EntryType("REFUND"),
				Amount:      decimal.NewFromInt(5),
				Description: "x",
			},
			wantErr: domain.ErrEntryTypeInvalid,
		},
		{
			name: "payroll without employee",
			entry: domain.LedgerEntry{
				Type:        domain.Debit,
				Amount:      decimal.NewFromInt(3000),
				Description: "Salary",
				Category:    domain.CategoryPayroll,
			},
			wantErr: domain.ErrEntryEmployeeMissing,
		},
		{
			name: "payroll with employee",
			entry: domain.LedgerEntry{
				Type:        domain.Debit,
				Amount:      decimal.NewFromInt(3000),
				Description: "Salary",
				Category:    domain.CategoryPayroll,
				EmployeeID:  strPtr("emp-1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Government Fees", domain.CategoryGovernmentFees.Label())
	assert.Equal(t, domain.UncategorizedLabel, domain.Category("coffee").Label())
	assert.False(t, domain.Category("coffee").IsKnown())
	assert.Len(t, domain.KnownCategories(), 16)
	for _, c := range domain.KnownCategories() {
		assert.True(t, c.IsKnown(), c)
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	credit := domain.LedgerEntry{Type: domain.Credit, Amount: decimal.NewFromInt(1000)}
	debit := domain.LedgerEntry{Type: domain.Debit, Amount: decimal.NewFromInt(400)}
	assert.True(t, credit.SignedAmount().Add(debit.SignedAmount()).Equal(decimal.NewFromInt(600)))
}
