package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/internal/invariant"
	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// CreditSale is a charge billed to a unit
type CreditSale struct {
	ApartmentID string
	Amount      float64
	Date        time.Time
	Category    models.Category
	Description string
}

// Payment is money received from a unit
type Payment struct {
	ApartmentID string
	Amount      float64
	Date        time.Time
	Method      models.PaymentMethod
	// AccountID, when set, records the deposit on that bank account
	AccountID           *string
	Reference           *string
	Notes               *string
	Classification      models.PaymentClassification
	CommonExpenseAmount *float64
	ReserveFundAmount   *float64
}

// SettledCredit is the part of a payment applied to one credit sale
type SettledCredit struct {
	TransactionID string
	Applied       float64
	State         models.CreditState
}

// PaymentResult is everything a payment wrote
type PaymentResult struct {
	Receipt  *models.Transaction
	Deposit  *models.BankMovement
	Settled  []SettledCredit
	Leftover float64
}

func occupancyLabel(k models.OccupancyKind) string {
	if k == models.OccupancyOwner {
		return "Propietario"
	}
	return "Inquilino"
}

var classificationLabels = map[models.PaymentClassification]string{
	models.ClassCommonExpense: "Gasto Común",
	models.ClassReserveFund:   "Fondo de Reserva",
	models.ClassMixed:         "Mixto",
}

// CreateCreditSale bills a unit; the sale starts pending
func (s *Store) CreateCreditSale(ctx context.Context, sale CreditSale) (*models.Transaction, error) {
	const op = "create credit sale"
	category := sale.Category
	t := &models.Transaction{
		Kind:        models.KindCreditSale,
		Amount:      sale.Amount,
		Date:        models.At(sale.Date),
		Category:    &category,
		ApartmentID: &sale.ApartmentID,
	}
	if sale.Description != "" {
		t.Description = &sale.Description
	}
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		if _, err := find[models.Apartment](tx, sale.ApartmentID); err != nil {
			return err
		}
		return insertTransaction(tx, t)
	}); err != nil {
		return nil, err
	}
	return t, nil
}

// RecordPayment stores a payment receipt, optionally deposits it on a bank
// account and settles the unit's open credit sales oldest first. Everything
// happens in one transaction.
func (s *Store) RecordPayment(ctx context.Context, p Payment) (*PaymentResult, error) {
	const op = "record payment"
	if p.Amount <= 0 {
		return nil, storeerr.WithOp(op, storeerr.Invalid(invariant.RulePaymentPositive, "payment amount must be positive"))
	}
	if !p.Classification.IsValid() {
		return nil, storeerr.WithOp(op, storeerr.Invalid(invariant.RuleEnumDomain, "unknown payment classification %q", p.Classification))
	}

	result := &PaymentResult{}
	err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		apt, err := find[models.Apartment](tx, p.ApartmentID)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Recibo de Pago (%s) - Apto %s (%s)",
			classificationLabels[p.Classification], apt.Number, occupancyLabel(apt.Occupancy))
		if p.Reference != nil && *p.Reference != "" {
			description += " - Ref: " + *p.Reference
		}

		method := p.Method
		if method == "" {
			method = models.PaymentCash
		}
		classification := p.Classification
		receipt := &models.Transaction{
			Kind:                models.KindPaymentReceipt,
			Amount:              p.Amount,
			Date:                models.At(p.Date),
			Description:         &description,
			Reference:           p.Reference,
			PaymentMethod:       &method,
			Notes:               p.Notes,
			Classification:      &classification,
			CommonExpenseAmount: p.CommonExpenseAmount,
			ReserveFundAmount:   p.ReserveFundAmount,
			ApartmentID:         &apt.ID,
		}
		if err := insertTransaction(tx, receipt); err != nil {
			return err
		}
		result.Receipt = receipt

		if p.AccountID != nil {
			deposit := &models.BankMovement{
				Kind:          models.MovementIncome,
				Amount:        p.Amount,
				Date:          receipt.Date,
				Description:   description,
				Reference:     p.Reference,
				AccountID:     *p.AccountID,
				TransactionID: &receipt.ID,
			}
			if err := insertMovement(tx, deposit); err != nil {
				return err
			}
			result.Deposit = deposit
		}

		return settleCredits(tx, apt.ID, p.Amount, result)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("apartment", p.ApartmentID),
		zap.Float64("amount", p.Amount),
		zap.Int("settled", len(result.Settled)))
	return result, nil
}

// settleCredits applies amount to the open credit sales of a unit, oldest first
func settleCredits(tx *gorm.DB, apartmentID string, amount float64, result *PaymentResult) error {
	var open []models.Transaction
	if err := tx.Where("apartamentoId = ? AND tipo = ? AND estadoCredito IN ?", apartmentID,
		models.KindCreditSale, []models.CreditState{models.CreditPending, models.CreditPartial}).
		Order("fecha, createdAt").Find(&open).Error; err != nil {
		return err
	}

	remaining := invariant.Money(amount)
	for i := range open {
		if !remaining.IsPositive() {
			break
		}
		credit := &open[i]
		applied, err := invariant.ApplyPayment(credit, remaining)
		if err != nil {
			return err
		}
		if applied.IsZero() {
			continue
		}
		remaining = remaining.Sub(applied)

		if err := tx.Model(credit).Updates(map[string]any{
			"montoPagado":   *credit.PaidAmount,
			"estadoCredito": *credit.CreditState,
			"updatedAt":     models.Now(),
		}).Error; err != nil {
			return err
		}
		result.Settled = append(result.Settled, SettledCredit{
			TransactionID: credit.ID,
			Applied:       applied.InexactFloat64(),
			State:         *credit.CreditState,
		})
	}
	result.Leftover = remaining.InexactFloat64()
	return nil
}

// LinkReceipt deposits an existing payment receipt on a bank account. A
// receipt can be deposited once.
func (s *Store) LinkReceipt(ctx context.Context, transactionID, accountID string) (*models.BankMovement, error) {
	const op = "link receipt"
	var deposit *models.BankMovement
	if err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		receipt, err := find[models.Transaction](tx, transactionID)
		if err != nil {
			return err
		}
		if receipt.Kind != models.KindPaymentReceipt {
			return storeerr.Invalid(invariant.RulePaymentKind, "only payment receipts can be deposited, got %s", receipt.Kind)
		}

		var linked int64
		if err := tx.Model(&models.BankMovement{}).Where("transaccionId = ?", transactionID).Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return storeerr.Violation("", catalog.RuleBankMovementTransaction, fmt.Errorf("receipt %s is already deposited", transactionID))
		}

		unit := "N/A"
		if receipt.ApartmentID != nil {
			if apt, err := find[models.Apartment](tx, *receipt.ApartmentID); err == nil {
				unit = apt.Number
			}
		}
		label := "Recibo de pago"
		if receipt.Description != nil && *receipt.Description != "" {
			label = *receipt.Description
		}

		deposit = &models.BankMovement{
			Kind:          models.MovementIncome,
			Amount:        receipt.Amount,
			Date:          receipt.Date,
			Description:   fmt.Sprintf("Pago Apto %s - %s", unit, label),
			Reference:     receipt.Reference,
			AccountID:     accountID,
			TransactionID: &receipt.ID,
		}
		return insertMovement(tx, deposit)
	}); err != nil {
		return nil, err
	}
	return deposit, nil
}

// UnlinkedReceipt is a payment receipt not yet deposited on any account
type UnlinkedReceipt struct {
	models.Transaction
	ApartmentNumber *string               `gorm:"column:numero"`
	Occupancy       *models.OccupancyKind `gorm:"column:tipoOcupacion"`
}

// UnlinkedReceipts lists receipts without a deposit, newest first
func (s *Store) UnlinkedReceipts(ctx context.Context) ([]UnlinkedReceipt, error) {
	var out []UnlinkedReceipt
	err := s.db.WithContext(ctx).
		Table(catalog.Transactions+" AS t").
		Select("t.*, a.numero, a.tipoOcupacion").
		Joins("LEFT JOIN "+catalog.Apartments+" AS a ON a.id = t.apartamentoId").
		Where("t.tipo = ?", models.KindPaymentReceipt).
		Where("NOT EXISTS (SELECT 1 FROM " + catalog.BankMovements + " m WHERE m.transaccionId = t.id)").
		Order("t.fecha DESC").
		Scan(&out).Error
	if err != nil {
		return nil, s.translate("list unlinked receipts", err)
	}
	return out, nil
}

// MonthlyCharges summarises a run of GenerateMonthlyCharges
type MonthlyCharges struct {
	Created int
	Month   string
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthLabel renders a month the way the reports name it, e.g. "marzo de 2025"
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthNames[t.Month()-1], t.Year())
}

// GenerateMonthlyCharges bills every unit its common expenses and reserve fund
// for the month of at, skipping charges already billed that month.
func (s *Store) GenerateMonthlyCharges(ctx context.Context, at time.Time) (*MonthlyCharges, error) {
	const op = "generate monthly charges"
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	label := MonthLabel(at)

	result := &MonthlyCharges{Month: label}
	err := s.inTx(ctx, op, func(tx *gorm.DB) error {
		var apartments []models.Apartment
		if err := tx.Order("numero, tipoOcupacion").Find(&apartments).Error; err != nil {
			return err
		}
		if len(apartments) == 0 {
			return storeerr.New(storeerr.NotFound, "", fmt.Errorf("no apartments registered"))
		}

		for _, apt := range apartments {
			charges := []struct {
				category models.Category
				amount   float64
				title    string
			}{
				{models.CategoryCommonExpenses, apt.CommonExpense, "Gastos Comunes"},
				{models.CategoryReserveFund, apt.ReserveFund, "Fondo de Reserva"},
			}
			for _, c := range charges {
				if c.amount <= 0 {
					continue
				}
				var billed int64
				if err := tx.Model(&models.Transaction{}).
					Where("apartamentoId = ? AND tipo = ? AND categoria = ? AND fecha >= ? AND fecha <= ?",
						apt.ID, models.KindCreditSale, c.category, models.At(start), models.At(end)).
					Count(&billed).Error; err != nil {
					return err
				}
				if billed > 0 {
					continue
				}

				category := c.category
				description := c.title + " - " + label
				aptID := apt.ID
				if err := insertTransaction(tx, &models.Transaction{
					Kind:        models.KindCreditSale,
					Amount:      c.amount,
					Date:        models.At(at),
					Category:    &category,
					Description: &description,
					ApartmentID: &aptID,
				}); err != nil {
					return err
				}
				result.Created++
			}
		}

		if result.Created == 0 {
			return storeerr.Invalid(invariant.RuleMonthlyChargesDone, "charges for %s were already generated", label)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("monthly charges generated", zap.String("month", label), zap.Int("created", result.Created))
	return result, nil
}
