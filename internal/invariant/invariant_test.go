package invariant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

func ptr[T any](v T) *T { return &v }

func creditSale(amount float64, paid *float64) *models.Transaction {
	return &models.Transaction{Kind: models.KindCreditSale, Amount: amount, PaidAmount: paid}
}

func TestDeriveCreditState(t *testing.T) {
	tests := []struct {
		paid float64
		want models.CreditState
		rule string
	}{
		{0, models.CreditPending, ""},
		{40, models.CreditPartial, ""},
		{99.99, models.CreditPartial, ""},
		{100, models.CreditPaid, ""},
		{150, "", RuleCreditOverpaid},
		{-1, "", RuleCreditNegative},
	}
	for _, tt := range tests {
		got, err := DeriveCreditState(100, tt.paid)
		if tt.rule != "" {
			assert.ErrorIs(t, err, storeerr.Rule(storeerr.Validation, tt.rule), "paid %v", tt.paid)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "paid %v", tt.paid)
	}
}

func TestCheckCredit_DerivesState(t *testing.T) {
	tx := creditSale(100, nil)
	require.NoError(t, CheckCredit(tx))
	assert.Equal(t, models.CreditPending, *tx.CreditState)
	assert.Equal(t, 0.0, *tx.PaidAmount)

	tx = creditSale(100, ptr(40.0))
	require.NoError(t, CheckCredit(tx))
	assert.Equal(t, models.CreditPartial, *tx.CreditState)

	tx = creditSale(100, ptr(100.0))
	tx.CreditState = ptr(models.CreditPaid)
	require.NoError(t, CheckCredit(tx))
	assert.Equal(t, models.CreditPaid, *tx.CreditState)
}

func TestRederiveState(t *testing.T) {
	stored := creditSale(100, ptr(0.0))
	stored.CreditState = ptr(models.CreditPending)

	edited := creditSale(100, ptr(40.0))
	edited.CreditState = ptr(models.CreditPending)
	RederiveState(stored, edited)
	require.NoError(t, CheckCredit(edited))
	assert.Equal(t, models.CreditPartial, *edited.CreditState)

	changed := creditSale(100, ptr(40.0))
	changed.CreditState = ptr(models.CreditPaid)
	RederiveState(stored, changed)
	assert.ErrorIs(t, CheckCredit(changed), storeerr.Rule(storeerr.Validation, RuleCreditState))
}

func TestCheckCredit_Rejects(t *testing.T) {
	err := CheckCredit(creditSale(100, ptr(150.0)))
	assert.ErrorIs(t, err, storeerr.Rule(storeerr.Validation, RuleCreditOverpaid))

	tx := creditSale(100, ptr(40.0))
	tx.CreditState = ptr(models.CreditPaid)
	assert.ErrorIs(t, CheckCredit(tx), storeerr.Rule(storeerr.Validation, RuleCreditState))

	income := &models.Transaction{Kind: models.KindIncome, Amount: 10, CreditState: ptr(models.CreditPending)}
	assert.ErrorIs(t, CheckCredit(income), storeerr.Rule(storeerr.Validation, RuleCreditStateKind))

	income = &models.Transaction{Kind: models.KindIncome, Amount: 10, PaidAmount: ptr(5.0)}
	assert.ErrorIs(t, CheckCredit(income), storeerr.Rule(storeerr.Validation, RuleCreditStateKind))

	income.PaidAmount = ptr(0.0)
	assert.NoError(t, CheckCredit(income))
}

func TestApplyPayment(t *testing.T) {
	tx := creditSale(100, ptr(0.0))

	applied, err := ApplyPayment(tx, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, applied.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, models.CreditPartial, *tx.CreditState)

	applied, err = ApplyPayment(tx, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, applied.Equal(decimal.NewFromInt(60)), applied.String())
	assert.Equal(t, models.CreditPaid, *tx.CreditState)
	assert.Equal(t, 100.0, *tx.PaidAmount)

	applied, err = ApplyPayment(tx, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, applied.IsZero())

	_, err = ApplyPayment(&models.Transaction{Kind: models.KindExpense, Amount: 1}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, storeerr.Rule(storeerr.Validation, RulePaymentKind))
}

func TestApplyPayment_DecimalSum(t *testing.T) {
	tx := creditSale(0.3, ptr(0.1))
	_, err := ApplyPayment(tx, decimal.NewFromFloat(0.2))
	require.NoError(t, err)
	assert.Equal(t, models.CreditPaid, *tx.CreditState)
	assert.Equal(t, 0.3, *tx.PaidAmount)
}

func mixed(amount, common, reserve float64) *models.Transaction {
	return &models.Transaction{
		Kind:                models.KindPaymentReceipt,
		Amount:              amount,
		Classification:      ptr(models.ClassMixed),
		CommonExpenseAmount: ptr(common),
		ReserveFundAmount:   ptr(reserve),
	}
}

func TestCheckSplit(t *testing.T) {
	err := CheckSplit(mixed(100, 60, 39.99))
	require.Error(t, err)
	assert.ErrorIs(t, err, storeerr.Rule(storeerr.Validation, RuleSplitSum))
	assert.Contains(t, err.Error(), "expected 100.00, got 99.99")

	assert.NoError(t, CheckSplit(mixed(100, 60, 40)))
	assert.NoError(t, CheckSplit(mixed(100, 60.004, 40)))
	assert.NoError(t, CheckSplit(mixed(0.3, 0.1, 0.2)))

	missing := mixed(100, 60, 40)
	missing.ReserveFundAmount = nil
	assert.ErrorIs(t, CheckSplit(missing), storeerr.Rule(storeerr.Validation, RuleSplitSum))

	assert.ErrorIs(t, CheckSplit(mixed(100, 140, -40)), storeerr.Rule(storeerr.Validation, RuleSplitSum))

	common := &models.Transaction{Kind: models.KindPaymentReceipt, Amount: 100, Classification: ptr(models.ClassCommonExpense)}
	assert.NoError(t, CheckSplit(common))
	common.CommonExpenseAmount = ptr(100.0)
	assert.ErrorIs(t, CheckSplit(common), storeerr.Rule(storeerr.Validation, RuleSplitUnused))
}

func TestStruct_Enums(t *testing.T) {
	apt := &models.Apartment{Number: "101", Occupancy: models.OccupancyOwner}
	assert.NoError(t, Struct(apt))

	apt.Occupancy = "OWNER"
	err := Struct(apt)
	assert.ErrorIs(t, err, storeerr.Rule(storeerr.Validation, RuleEnumDomain))
	assert.Contains(t, err.Error(), "Apartment.Occupancy")

	apt.Occupancy = models.OccupancyTenant
	apt.Number = ""
	assert.ErrorIs(t, Struct(apt), storeerr.Rule(storeerr.Validation, "required"))

	tx := &models.Transaction{Kind: models.KindIncome, Amount: 10, Category: ptr(models.Category("FOOD"))}
	assert.ErrorIs(t, Struct(tx), storeerr.Rule(storeerr.Validation, RuleEnumDomain))
	tx.Category = ptr(models.CategoryMaintenance)
	assert.NoError(t, Struct(tx))
	tx.Category = nil
	assert.NoError(t, Struct(tx))
}

func TestCheckTransaction(t *testing.T) {
	tx := creditSale(100, nil)
	tx.Category = ptr(models.CategoryCommonExpenses)
	require.NoError(t, CheckTransaction(tx))
	assert.Equal(t, models.CreditPending, *tx.CreditState)

	bad := creditSale(0, nil)
	assert.ErrorIs(t, CheckTransaction(bad), storeerr.ErrValidation)
}
