// Package invariant holds the financial consistency rules checked before a write reaches the store.
package invariant

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/bentancorlucia/admin-edificios/internal/models"
	"github.com/bentancorlucia/admin-edificios/internal/storeerr"
)

// Rule names reported in validation errors
const (
	RuleEnumDomain         = "enum_domain"
	RuleCreditOverpaid     = "credit_overpaid"
	RuleCreditNegative     = "credit_negative_payment"
	RuleCreditState        = "credit_state"
	RuleCreditStateKind    = "credit_state_kind"
	RuleSplitSum           = "split_sum"
	RuleSplitUnused        = "split_unused"
	RuleServiceTypeKnown   = "service_type_known"
	RulePaymentKind        = "payment_kind"
	RulePaymentPositive    = "payment_positive"
	RuleMonthlyChargesDone = "monthly_charges_done"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(models.Enum)
		return ok && e.IsValid()
	})
	return v
}

// Struct checks the field-level rules declared on a model
func Struct(model any) error {
	err := validate.Struct(model)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return storeerr.New(storeerr.Validation, "", err)
	}

	fe := verrs[0]
	rule := fe.Tag()
	if rule == "enum" {
		rule = RuleEnumDomain
	}
	return &storeerr.Error{
		Kind: storeerr.Validation,
		Rule: rule,
		Err:  fmt.Errorf("%s: value %v fails %q", fe.Namespace(), fe.Value(), fe.Tag()),
	}
}
