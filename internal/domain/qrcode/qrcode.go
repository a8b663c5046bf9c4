package qrcode

import (
	"time"

	"github.com/google/uuid"
)

// Code is a generated payment QR code kept around so the page can link to
// the image, its download variant, and the raw payload after a form submit.
type Code struct {
	ID        uuid.UUID
	Payload   string
	PNG       []byte
	CreatedAt time.Time
}

// Generator renders a payload string into a PNG image.
type Generator interface {
	Generate(payload string) ([]byte, error)
}

// Store keeps generated codes for later retrieval by id.
type Store interface {
	Put(payload string, png []byte) Code
	Get(id uuid.UUID) (Code, bool)
}
