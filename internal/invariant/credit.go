package invariant

import (
	"github.com/shopspring/decimal"

	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// Money converts a stored amount to a decimal
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// DeriveCreditState computes the repayment state of a credit sale
func DeriveCreditState(amount, paid float64) (models.CreditState, error) {
	a, p := Money(amount), Money(paid)
	switch {
	case p.IsNegative():
		return "", storeerr.Invalid(RuleCreditNegative, "paid amount %s is negative", p.StringFixed(2))
	case p.GreaterThan(a):
		return "", storeerr.Invalid(RuleCreditOverpaid, "paid amount %s exceeds %s", p.StringFixed(2), a.StringFixed(2))
	case p.IsZero():
		return models.CreditPending, nil
	case p.LessThan(a):
		return models.CreditPartial, nil
	default:
		return models.CreditPaid, nil
	}
}

// CheckCredit normalises the credit fields of a transaction. Credit sales get
// a paid amount and the state derived from it; an explicit state that
// disagrees is rejected. Other kinds must not carry credit data.
func CheckCredit(t *models.Transaction) error {
	if t.Kind != models.KindCreditSale {
		if t.CreditState != nil {
			return storeerr.Invalid(RuleCreditStateKind, "%s transactions have no credit state", t.Kind)
		}
		if t.PaidAmount != nil && *t.PaidAmount != 0 {
			return storeerr.Invalid(RuleCreditStateKind, "%s transactions have no paid amount", t.Kind)
		}
		return nil
	}

	paid := 0.0
	if t.PaidAmount != nil {
		paid = *t.PaidAmount
	}
	state, err := DeriveCreditState(t.Amount, paid)
	if err != nil {
		return err
	}
	if t.CreditState != nil && *t.CreditState != state {
		return storeerr.Invalid(RuleCreditState, "state %s does not match paid amount %.2f of %.2f (expected %s)",
			*t.CreditState, paid, t.Amount, state)
	}
	t.PaidAmount = &paid
	t.CreditState = &state
	return nil
}

// RederiveState drops a credit state that an update carries over unchanged
// from the stored row, so CheckCredit derives it again from the new paid
// amount. A state the caller did change is kept and checked.
func RederiveState(stored, t *models.Transaction) {
	if t.CreditState != nil && stored.CreditState != nil && *t.CreditState == *stored.CreditState {
		t.CreditState = nil
	}
}

// ApplyPayment settles up to payment of a credit sale's outstanding amount
// and returns what was applied.
func ApplyPayment(t *models.Transaction, payment decimal.Decimal) (decimal.Decimal, error) {
	if t.Kind != models.KindCreditSale {
		return decimal.Zero, storeerr.Invalid(RulePaymentKind, "payments apply to credit sales, not %s", t.Kind)
	}
	if !payment.IsPositive() {
		return decimal.Zero, nil
	}

	paid := decimal.Zero
	if t.PaidAmount != nil {
		paid = Money(*t.PaidAmount)
	}
	outstanding := Money(t.Amount).Sub(paid)
	if !outstanding.IsPositive() {
		return decimal.Zero, nil
	}

	applied := decimal.Min(payment, outstanding)
	newPaid := paid.Add(applied).InexactFloat64()
	state, err := DeriveCreditState(t.Amount, newPaid)
	if err != nil {
		return decimal.Zero, err
	}
	t.PaidAmount = &newPaid
	t.CreditState = &state
	return applied, nil
}
