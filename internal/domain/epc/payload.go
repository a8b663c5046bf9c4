// Package epc renders the EPC069-12 data string encoded into SEPA payment
// QR codes.
package epc

import (
	"strings"

	"github.com/sepatools/epc-qr-hub/internal/domain/payment"
)

const (
	serviceTag     = "BCD"
	version        = "002"
	characterSet   = "1" // UTF-8
	identification = "SCT"

	// LineCount is the fixed number of lines in every payload.
	LineCount = 11
)

// Payload renders fields into the eleven-line EPC069-12 data string.
//
// The function is total and performs no validation: every line after the
// four fixed markers carries the caller-supplied value verbatim, except the
// amount, which becomes "EUR" followed by the value at two decimal places
// when positive and the empty string when zero. Lines are joined with a
// single newline and there is no trailing newline. Callers are responsible
// for validating fields (payment.Fields.Validate) first.
func Payload(f payment.Fields) string {
	amount := ""
	if f.Amount.IsPositive() {
		amount = "EUR" + f.Amount.StringFixed(2)
	}

	lines := [LineCount]string{
		serviceTag,
		version,
		characterSet,
		identification,
		f.BIC,
		f.Name,
		f.IBAN,
		amount,
		f.Purpose,
		f.RemittanceInfo,
		f.DebtorReference,
	}
	return strings.Join(lines[:], "\n")
}
