package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
)

// Balances returns what each unit owes: credit sales minus payment receipts.
// A negative balance is money in favour of the unit.
func (s *Store) Balances(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []models.Transaction
	if err := s.db.WithContext(ctx).
		Select("apartamentoId", "tipo", "monto").
		Where("tipo IN ? AND apartamentoId IS NOT NULL", []models.TransactionKind{models.KindCreditSale, models.KindPaymentReceipt}).
		Find(&rows).Error; err != nil {
		return nil, s.translate("compute balances", err)
	}

	out := make(map[string]decimal.Decimal)
	for _, r := range rows {
		amount := invariant.Money(r.Amount)
		if r.Kind == models.KindPaymentReceipt {
			amount = amount.Neg()
		}
		out[*r.ApartmentID] = out[*r.ApartmentID].Add(amount)
	}
	return out, nil
}

// StatementLine is a movement with the account balance right after it
type StatementLine struct {
	Movement models.BankMovement
	Balance  decimal.Decimal
}

// AccountStatement is the activity of a bank account over a period
type AccountStatement struct {
	Account models.BankAccount
	Lines   []StatementLine
	Opening decimal.Decimal
	Income  decimal.Decimal
	Expense decimal.Decimal
	Closing decimal.Decimal
}

func signed(m *models.BankMovement) decimal.Decimal {
	amount := invariant.Money(m.Amount)
	if m.Kind == models.MovementExpense {
		return amount.Neg()
	}
	return amount
}

// AccountStatement lists the movements of an account between from and to,
// oldest first, with a running balance. Nil bounds are open. The opening
// balance includes every movement before from.
func (s *Store) AccountStatement(ctx context.Context, accountID string, from, to *time.Time) (*AccountStatement, error) {
	const op = "account statement"
	account, err := s.GetBankAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var movements []models.BankMovement
	if err := s.db.WithContext(ctx).Where("cuentaBancariaId = ?", accountID).
		Order("fecha, createdAt").Find(&movements).Error; err != nil {
		return nil, s.translate(op, err)
	}

	st := &AccountStatement{Account: *account, Opening: invariant.Money(account.InitialBalance)}
	for _, m := range movements {
		if from != nil && m.Date.Before(*from) {
			st.Opening = st.Opening.Add(signed(&m))
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		if m.Kind == models.MovementIncome {
			st.Income = st.Income.Add(invariant.Money(m.Amount))
		} else {
			st.Expense = st.Expense.Add(invariant.Money(m.Amount))
		}
		st.Lines = append(st.Lines, StatementLine{Movement: m})
	}

	balance := st.Opening
	for i := range st.Lines {
		balance = balance.Add(signed(&st.Lines[i].Movement))
		st.Lines[i].Balance = balance
	}
	st.Closing = balance
	return st, nil
}

// FundTotals splits an amount between the two funds of the building
type FundTotals struct {
	CommonExpense decimal.Decimal
	ReserveFund   decimal.Decimal
	Total         decimal.Decimal
}

func (f *FundTotals) add(common, reserve decimal.Decimal) {
	f.CommonExpense = f.CommonExpense.Add(common)
	f.ReserveFund = f.ReserveFund.Add(reserve)
	f.Total = f.CommonExpense.Add(f.ReserveFund)
}

// CumulativeReport compares collections and expenses per fund over a period
type CumulativeReport struct {
	From     time.Time
	To       time.Time
	Receipts FundTotals
	Expenses FundTotals
	Balance  FundTotals
}

// CumulativeReport covers whole days, from the start of from to the end of to
func (s *Store) CumulativeReport(ctx context.Context, from, to time.Time) (*CumulativeReport, error) {
	const op = "cumulative report"
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
	report := &CumulativeReport{From: start, To: end}

	var receipts []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("tipo = ? AND fecha >= ? AND fecha <= ?", models.KindPaymentReceipt, models.At(start), models.At(end)).
		Find(&receipts).Error; err != nil {
		return nil, s.translate(op, err)
	}
	for _, r := range receipts {
		common, reserve := receiptFunds(&r)
		report.Receipts.add(common, reserve)
	}

	var expenses []models.BankMovement
	if err := s.db.WithContext(ctx).
		Where("tipo = ? AND fecha >= ? AND fecha <= ?", models.MovementExpense, models.At(start), models.At(end)).
		Find(&expenses).Error; err != nil {
		return nil, s.translate(op, err)
	}
	for _, e := range expenses {
		if e.Classification == nil {
			continue
		}
		switch *e.Classification {
		case models.MovementCommonExpense:
			report.Expenses.add(invariant.Money(e.Amount), decimal.Zero)
		case models.MovementReserveFund:
			report.Expenses.add(decimal.Zero, invariant.Money(e.Amount))
		}
	}

	report.Balance.add(
		report.Receipts.CommonExpense.Sub(report.Expenses.CommonExpense),
		report.Receipts.ReserveFund.Sub(report.Expenses.ReserveFund),
	)
	return report, nil
}

// receiptFunds allocates a receipt to the funds. Unclassified receipts
// without split amounts count as common expenses.
func receiptFunds(r *models.Transaction) (common, reserve decimal.Decimal) {
	amount := invariant.Money(r.Amount)
	if r.Classification != nil {
		switch *r.Classification {
		case models.ClassCommonExpense:
			return amount, decimal.Zero
		case models.ClassReserveFund:
			return decimal.Zero, amount
		}
	}
	if r.CommonExpenseAmount != nil {
		common = invariant.Money(*r.CommonExpenseAmount)
	}
	if r.ReserveFundAmount != nil {
		reserve = invariant.Money(*r.ReserveFundAmount)
	}
	if r.Classification == nil && common.IsZero() && reserve.IsZero() {
		common = amount
	}
	return common, reserve
}
