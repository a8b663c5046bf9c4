package payment

// PurposeCodes lists the ISO 20022 purpose codes the form offers, in the
// order they appear in the selector. Labels are translated per language by
// the i18n bundle under the purpose_codes.* keys.
var PurposeCodes = []string{
	"CBFF", "CHAR", "COMC", "CPKC", "DIVI", "GOVI", "GSCI",
	"INST", "INTC", "LIMA", "OTHR", "RLTI", "SALA", "SECU",
	"SSBE", "SUPP", "TAXS", "TRAD", "TREA", "VATX", "WHLD",
}

var purposeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PurposeCodes))
	for _, c := range PurposeCodes {
		m[c] = struct{}{}
	}
	return m
}()

// KnownPurpose reports whether code is one of the offered purpose codes.
func KnownPurpose(code string) bool {
	_, ok := purposeSet[code]
	return ok
}
