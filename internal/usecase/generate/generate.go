package generate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sepatools/epc-qr-hub/internal/domain/epc"
	"github.com/sepatools/epc-qr-hub/internal/domain/payment"
	"github.com/sepatools/epc-qr-hub/internal/domain/qrcode"
)

//go:generate mockgen -source=../../domain/qrcode/qrcode.go -destination=mocks/mock_qrcode.go -package=mocks

// Request carries the raw form values of one submission. Amount is the
// submitted string; empty means zero (variable amount).
type Request struct {
	BIC             string
	Name            string
	IBAN            string
	Amount          string
	Purpose         string
	RemittanceInfo  string
	DebtorReference string
}

type UseCase struct {
	generator qrcode.Generator
	store     qrcode.Store
}

func NewUseCase(generator qrcode.Generator, store qrcode.Store) *UseCase {
	return &UseCase{generator: generator, store: store}
}

// Execute validates the submission, renders the payload, encodes the QR
// image and stores it for retrieval. Validation failures come back wrapped
// in payment.ErrValidation.
func (uc *UseCase) Execute(req Request) (qrcode.Code, error) {
	fields, err := uc.parse(req)
	if err != nil {
		return qrcode.Code{}, err
	}

	if err := fields.Validate(); err != nil {
		return qrcode.Code{}, err
	}

	payload := epc.Payload(fields)

	png, err := uc.generator.Generate(payload)
	if err != nil {
		return qrcode.Code{}, fmt.Errorf("generate qr: %w", err)
	}

	return uc.store.Put(payload, png), nil
}

// Lookup returns a previously generated code.
func (uc *UseCase) Lookup(id uuid.UUID) (qrcode.Code, bool) {
	return uc.store.Get(id)
}

func (uc *UseCase) parse(req Request) (payment.Fields, error) {
	amount := decimal.Zero
	if req.Amount != "" {
		var err error
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			return payment.Fields{}, fmt.Errorf("%w: amount is not a number", payment.ErrValidation)
		}
	}

	fields := payment.Fields{
		BIC:             req.BIC,
		Name:            req.Name,
		IBAN:            req.IBAN,
		Amount:          amount,
		Purpose:         req.Purpose,
		RemittanceInfo:  req.RemittanceInfo,
		DebtorReference: req.DebtorReference,
	}
	return fields.Normalize(), nil
}
