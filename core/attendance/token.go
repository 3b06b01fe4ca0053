package attendance

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// IssueInterval is the cadence at which a selected class gets a fresh token.
	IssueInterval = 5 * time.Second

	// TokenValidity exceeds IssueInterval so a scan of the previous frame that
	// is still in flight when the code rotates is not rejected.
	TokenValidity = 8 * time.Second
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrMalformedToken = errors.New("this code is not valid for attendance")
	ErrExpiredToken   = errors.New("this code has expired, scan a new one")
)

// Token is the ephemeral payload behind the QR code shown for a class.
// It is never persisted; freshness is its only protection.
type Token struct {
	ClassID   int       `json:"classId"`
	Timestamp time.Time `json:"timestamp"` // issue time, ISO-8601
	Nonce     string    `json:"nonce"`
}

func NewToken(classID int) Token {
	return Token{
		ClassID:   classID,
		Timestamp: nowFunc().UTC(),
		Nonce:     uuid.New().String(),
	}
}

// Encode renders the token as the JSON text embedded in the QR code.
func (t Token) Encode() string {
	data, _ := json.Marshal(t)
	return string(data)
}

// QRCode renders the token as a size x size PNG at recovery level L.
func (t Token) QRCode(size int) ([]byte, error) {
	return qrcode.Encode(t.Encode(), qrcode.Low, size)
}

// ParseToken decodes a scanned payload. Anything that does not unmarshal into
// the token shape (including a non-numeric classId or a non-ISO timestamp)
// is malformed.
func ParseToken(raw string) (Token, error) {
	var t Token
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return Token{}, ErrMalformedToken
	}
	if t.Timestamp.IsZero() {
		return Token{}, ErrMalformedToken
	}
	return t, nil
}

// Validate checks the token against `now`: first freshness, then the class
// reference. The expiry window deliberately outlives the issue cadence, so a
// token can be stale by one rotation and still pass.
func (t Token) Validate(now time.Time) error {
	if now.Sub(t.Timestamp) > TokenValidity {
		return ErrExpiredToken
	}
	if t.ClassID <= 0 {
		return ErrMalformedToken
	}
	return nil
}

// ValidateScan is the full scan-side decision: parse, check freshness and
// return the class to submit attendance for. It performs no persistence.
func ValidateScan(raw string, now time.Time) (int, error) {
	t, err := ParseToken(raw)
	if err != nil {
		return 0, err
	}
	if err := t.Validate(now); err != nil {
		return 0, err
	}
	return t.ClassID, nil
}
