package payment_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatools/epc-qr-hub/internal/domain/payment"
)

func validFields() payment.Fields {
	return payment.Fields{
		BIC:             "GKCCBEBB",
		Name:            "John Doe",
		IBAN:            "BE68539007547034",
		Amount:          decimal.RequireFromString("123.45"),
		Purpose:         "COMC",
		RemittanceInfo:  "Invoice 2024-001",
		DebtorReference: "RF18539007547034",
	}
}

func TestValidate_ValidFields(t *testing.T) {
	require.NoError(t, validFields().Validate())
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	fields := payment.Fields{
		Name: "Jane Roe",
		IBAN: "NL91ABNA0417164300",
	}
	require.NoError(t, fields.Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*payment.Fields)
		want   error
	}{
		{"missing name", func(f *payment.Fields) { f.Name = "" }, payment.ErrNameRequired},
		{"name too long", func(f *payment.Fields) { f.Name = strings.Repeat("x", 71) }, payment.ErrNameTooLong},
		{"missing iban", func(f *payment.Fields) { f.IBAN = "" }, payment.ErrIBANRequired},
		{"iban bad country", func(f *payment.Fields) { f.IBAN = "1268539007547034" }, payment.ErrIBANInvalid},
		{"iban bad check digits", func(f *payment.Fields) { f.IBAN = "BEXX539007547034" }, payment.ErrIBANInvalid},
		{"iban lowercase", func(f *payment.Fields) { f.IBAN = "be68539007547034" }, payment.ErrIBANInvalid},
		{"iban too short", func(f *payment.Fields) { f.IBAN = "BE68" }, payment.ErrIBANInvalid},
		{"iban interior space", func(f *payment.Fields) { f.IBAN = "BE68 5390 0754 7034" }, payment.ErrIBANInvalid},
		{"bic wrong length", func(f *payment.Fields) { f.BIC = "GKCCBEB" }, payment.ErrBICInvalid},
		{"bic lowercase", func(f *payment.Fields) { f.BIC = "gkccbebb" }, payment.ErrBICInvalid},
		{"negative amount", func(f *payment.Fields) { f.Amount = decimal.RequireFromString("-1") }, payment.ErrAmountNegative},
		{"amount too large", func(f *payment.Fields) { f.Amount = decimal.RequireFromString("1000000000") }, payment.ErrAmountTooLarge},
		{"amount three decimals", func(f *payment.Fields) { f.Amount = decimal.RequireFromString("1.005") }, payment.ErrAmountPrecision},
		{"unknown purpose", func(f *payment.Fields) { f.Purpose = "ABCD" }, payment.ErrPurposeUnknown},
		{"remittance too long", func(f *payment.Fields) { f.RemittanceInfo = strings.Repeat("x", 141) }, payment.ErrRemittanceTooLong},
		{"reference too long", func(f *payment.Fields) { f.DebtorReference = strings.Repeat("x", 36) }, payment.ErrReferenceTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			tc.mutate(&fields)
			err := fields.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, payment.ErrValidation)
		})
	}
}

func TestValidate_TrailingZerosAreNotExtraPrecision(t *testing.T) {
	fields := validFields()
	fields.Amount = decimal.RequireFromString("123.450")
	require.NoError(t, fields.Validate())
}

func TestValidate_LimitsAreRuneCounts(t *testing.T) {
	fields := validFields()
	fields.Name = strings.Repeat("é", payment.MaxNameLength)
	require.NoError(t, fields.Validate())
}

func TestValidate_BIC11Characters(t *testing.T) {
	fields := validFields()
	fields.BIC = "GKCCBEBB123"
	require.NoError(t, fields.Validate())
}

func TestNormalize(t *testing.T) {
	fields := payment.Fields{
		BIC:             " gkccbebb ",
		Name:            "  John Doe ",
		IBAN:            " be68 5390 0754 7034 ",
		Purpose:         "comc",
		RemittanceInfo:  " Invoice 2024-001 ",
		DebtorReference: " RF18 ",
	}

	got := fields.Normalize()
	assert.Equal(t, "GKCCBEBB", got.BIC)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "BE68539007547034", got.IBAN)
	assert.Equal(t, "COMC", got.Purpose)
	assert.Equal(t, "Invoice 2024-001", got.RemittanceInfo)
	assert.Equal(t, "RF18", got.DebtorReference)
}

func TestKnownPurpose(t *testing.T) {
	for _, code := range payment.PurposeCodes {
		assert.True(t, payment.KnownPurpose(code), code)
	}
	assert.False(t, payment.KnownPurpose("ABCD"))
	assert.False(t, payment.KnownPurpose("comc"))
	assert.False(t, payment.KnownPurpose(""))
}
