package invariant

import (
	"github.com/shopspring/decimal"

	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

var splitTolerance = decimal.New(5, -3)

// CheckSplit enforces the fund allocation of a transaction. MIXTO requires
// both split amounts summing to the total; any other classification leaves
// them unset.
func CheckSplit(t *models.Transaction) error {
	if t.Classification == nil || *t.Classification != models.ClassMixed {
		if t.CommonExpenseAmount != nil || t.ReserveFundAmount != nil {
			return storeerr.Invalid(RuleSplitUnused, "split amounts require classification %s", models.ClassMixed)
		}
		return nil
	}

	if t.CommonExpenseAmount == nil || t.ReserveFundAmount == nil {
		return storeerr.Invalid(RuleSplitSum, "%s requires both split amounts", models.ClassMixed)
	}
	common, reserve := Money(*t.CommonExpenseAmount), Money(*t.ReserveFundAmount)
	if common.IsNegative() || reserve.IsNegative() {
		return storeerr.Invalid(RuleSplitSum, "split amounts must not be negative")
	}

	total := Money(t.Amount)
	sum := common.Add(reserve)
	if sum.Sub(total).Abs().GreaterThan(splitTolerance) {
		return storeerr.Invalid(RuleSplitSum, "expected %s, got %s", total.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}

// CheckTransaction runs every pre-write rule of a transaction
func CheckTransaction(t *models.Transaction) error {
	if err := Struct(t); err != nil {
		return err
	}
	if err := CheckCredit(t); err != nil {
		return err
	}
	return CheckSplit(t)
}
