package payment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLength       = 70
	MaxRemittanceLength = 140
	MaxReferenceLength  = 35
)

// MaxAmount is the upper bound for a SEPA Credit Transfer amount.
var MaxAmount = decimal.RequireFromString("999999999.99")

// ErrValidation is the base error every field validation failure wraps,
// so callers can match the whole class with errors.Is.
var ErrValidation = errors.New("invalid payment fields")

var (
	ErrNameRequired      = fmt.Errorf("%w: beneficiary name required", ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: beneficiary name exceeds %d characters", ErrValidation, MaxNameLength)
	ErrIBANRequired      = fmt.Errorf("%w: beneficiary IBAN required", ErrValidation)
	ErrIBANInvalid       = fmt.Errorf("%w: beneficiary IBAN malformed", ErrValidation)
	ErrBICInvalid        = fmt.Errorf("%w: BIC must be 8 or 11 alphanumeric characters", ErrValidation)
	ErrAmountNegative    = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrAmountTooLarge    = fmt.Errorf("%w: amount exceeds 999999999.99", ErrValidation)
	ErrAmountPrecision   = fmt.Errorf("%w: amount has more than two decimal places", ErrValidation)
	ErrPurposeUnknown    = fmt.Errorf("%w: unknown purpose code", ErrValidation)
	ErrRemittanceTooLong = fmt.Errorf("%w: remittance information exceeds %d characters", ErrValidation, MaxRemittanceLength)
	ErrReferenceTooLong  = fmt.Errorf("%w: structured reference exceeds %d characters", ErrValidation, MaxReferenceLength)
)

// Fields holds the details of a single SEPA Credit Transfer request.
// A zero Amount means "variable amount" (the payer fills it in when paying).
type Fields struct {
	BIC             string
	Name            string
	IBAN            string
	Amount          decimal.Decimal
	Purpose         string
	RemittanceInfo  string
	DebtorReference string
}

// Normalize applies the same cleanup the form applies on input: IBAN and BIC
// uppercased, spaces stripped from the IBAN, surrounding whitespace removed
// from the free-text fields.
func (f Fields) Normalize() Fields {
	f.BIC = strings.ToUpper(strings.TrimSpace(f.BIC))
	f.IBAN = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(f.IBAN), " ", ""))
	f.Name = strings.TrimSpace(f.Name)
	f.Purpose = strings.ToUpper(strings.TrimSpace(f.Purpose))
	f.RemittanceInfo = strings.TrimSpace(f.RemittanceInfo)
	f.DebtorReference = strings.TrimSpace(f.DebtorReference)
	return f
}

// Validate reports the first rule the fields break. The payload renderer
// itself performs no validation, so everything that collects Fields must
// call this before rendering.
func (f Fields) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if len([]rune(f.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	if f.IBAN == "" {
		return ErrIBANRequired
	}
	if !ibanShaped(f.IBAN) {
		return ErrIBANInvalid
	}
	if f.BIC != "" && !bicShaped(f.BIC) {
		return ErrBICInvalid
	}
	if f.Amount.IsNegative() {
		return ErrAmountNegative
	}
	if f.Amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	if !f.Amount.Equal(f.Amount.Round(2)) {
		return ErrAmountPrecision
	}
	if f.Purpose != "" && !KnownPurpose(f.Purpose) {
		return ErrPurposeUnknown
	}
	if len([]rune(f.RemittanceInfo)) > MaxRemittanceLength {
		return ErrRemittanceTooLong
	}
	if len([]rune(f.DebtorReference)) > MaxReferenceLength {
		return ErrReferenceTooLong
	}
	return nil
}

// ibanShaped checks the broad IBAN shape: two letters, two check digits,
// then up to 30 alphanumerics. Country-specific length and the mod-97
// check digit are left to the receiving bank.
func ibanShaped(iban string) bool {
	if len(iban) < 5 || len(iban) > 34 {
		return false
	}
	for i, r := range iban {
		switch {
		case i < 2:
			if r < 'A' || r > 'Z' {
				return false
			}
		case i < 4:
			if r < '0' || r > '9' {
				return false
			}
		default:
			if !alnumUpper(r) {
				return false
			}
		}
	}
	return true
}

func bicShaped(bic string) bool {
	if len(bic) != 8 && len(bic) != 11 {
		return false
	}
	for _, r := range bic {
		if !alnumUpper(r) {
			return false
		}
	}
	return true
}

func alnumUpper(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
