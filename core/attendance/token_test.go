package attendance

import (
	"testing"
	"time"
)

func TestParseValidateToken(t *testing.T) {
	issued := time.Date(2021, time.March, 8, 9, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return issued }
	defer func() { nowFunc = time.Now }()

	fresh := NewToken(42)

	tests := []struct {
		name    string
		raw     string
		now     time.Time
		wantID  int
		wantErr error
	}{
		{name: "empty payload", raw: "", now: issued, wantErr: ErrMalformedToken},
		{name: "not json", raw: "lmaooolol", now: issued, wantErr: ErrMalformedToken},
		{name: "non-numeric classId", raw: `{"classId":"42","timestamp":"2021-03-08T09:00:00Z","nonce":"n"}`, now: issued, wantErr: ErrMalformedToken},
		{name: "missing timestamp", raw: `{"classId":42,"nonce":"n"}`, now: issued, wantErr: ErrMalformedToken},
		{name: "bad timestamp", raw: `{"classId":42,"timestamp":"yesterday","nonce":"n"}`, now: issued, wantErr: ErrMalformedToken},
		{name: "missing classId", raw: `{"timestamp":"2021-03-08T09:00:00Z","nonce":"n"}`, now: issued, wantErr: ErrMalformedToken},
		{name: "scanned right away", raw: fresh.Encode(), now: issued, wantID: 42},
		{name: "scanned within window", raw: fresh.Encode(), now: issued.Add(7900 * time.Millisecond), wantID: 42},
		{name: "scanned after window", raw: fresh.Encode(), now: issued.Add(8100 * time.Millisecond), wantErr: ErrExpiredToken},
		{name: "expiry checked before classId", raw: `{"classId":0,"timestamp":"2021-03-08T08:00:00Z","nonce":"n"}`, now: issued, wantErr: ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classID, err := ValidateScan(tt.raw, tt.now)
			if err != tt.wantErr {
				t.Errorf("ValidateScan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if classID != tt.wantID {
				t.Errorf("ValidateScan() classID = %v, want %v", classID, tt.wantID)
			}
		})
	}
}

func TestTokenNonceUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := NewToken(1)
		if len(tok.Nonce) < 8 {
			t.Fatalf("nonce %q too short", tok.Nonce)
		}
		if seen[tok.Nonce] {
			t.Fatalf("nonce %q repeated", tok.Nonce)
		}
		seen[tok.Nonce] = true
	}
}

func TestTokenQRCode(t *testing.T) {
	png, err := NewToken(7).QRCode(200)
	if err != nil {
		t.Fatalf("QRCode(): %v", err)
	}
	if len(png) == 0 {
		t.Error("QRCode() returned no data")
	}
	// PNG signature
	if string(png[1:4]) != "PNG" {
		t.Errorf("QRCode() did not return a PNG, header = %q", png[:8])
	}
}
