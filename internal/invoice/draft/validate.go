package draft

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

var ErrInvalidDraft = errors.New("invalid_draft")

// FieldError describes one rejected draft field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e FieldError) Is(target error) bool {
	return target == ErrInvalidDraft
}

type itemRules struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Rate     float64 `json:"rate" validate:"gte=0"`
}

type draftRules struct {
	InvoiceDate   string      `json:"invoiceDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string      `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaidDate      string      `json:"paidDate" validate:"omitempty,datetime=2006-01-02"`
	TaxRate       float64     `json:"taxRate" validate:"gte=0"`
	Currency      string      `json:"currency" validate:"required,supported_currency"`
	CompanyLogo   string      `json:"companyLogo" validate:"omitempty,startswith=data:image/"`
	CompanyEmail  string      `json:"companyEmail" validate:"omitempty,email"`
	ClientEmail   string      `json:"clientEmail" validate:"omitempty,email"`
	PaidIndicator string      `json:"paidIndicator" validate:"oneof=stamp text"`
	Items         []itemRules `json:"items" validate:"min=1,dive"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("supported_currency", func(fl validator.FieldLevel) bool {
			return currency.Known(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the draft holds a storable invoice. Every problem is
// reported; each one matches ErrInvalidDraft.
func (d *Draft) Validate() error {
	return ValidateDetails(d.details)
}

func ValidateDetails(details domain.Details) error {
	in := draftRules{
		InvoiceDate:   domain.Deref(details.InvoiceDate),
		DueDate:       domain.Deref(details.DueDate),
		PaidDate:      domain.Deref(details.PaidDate),
		TaxRate:       details.TaxRate,
		Currency:      details.Currency,
		CompanyLogo:   domain.Deref(details.CompanyLogo),
		CompanyEmail:  strings.TrimSpace(details.CompanyEmail),
		ClientEmail:   strings.TrimSpace(details.ClientEmail),
		PaidIndicator: string(details.PaidIndicator),
		Items:         make([]itemRules, 0, len(details.Items)),
	}
	for _, item := range details.Items {
		in.Items = append(in.Items, itemRules{Quantity: item.Quantity, Rate: item.Rate})
	}

	err := rules().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, FieldError{
			Field:  jsonField(fe),
			Reason: fe.Tag(),
		})
	}
	return result.ErrorOrNil()
}

// FieldErrors flattens a Validate error into its field errors.
func FieldErrors(err error) []FieldError {
	var out []FieldError
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			var fe FieldError
			if errors.As(e, &fe) {
				out = append(out, fe)
			}
		}
		return out
	}
	var fe FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

func jsonField(fe validator.FieldError) string {
	// draftRules.items[0].rate -> items[0].rate
	_, field, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return field
}
