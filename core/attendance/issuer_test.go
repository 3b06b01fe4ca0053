package attendance

import (
	"testing"
	"time"
)

func TestIssuerReissuesOnCadence(t *testing.T) {
	iss := NewIssuer(10 * time.Millisecond)
	defer iss.Deselect()

	first := iss.Select(1)
	if first.ClassID != 1 {
		t.Fatalf("Select() classID = %d, want 1", first.ClassID)
	}

	// collect a few rotations
	nonces := map[string]bool{first.Nonce: true}
	deadline := time.Now().Add(500 * time.Millisecond)
	for len(nonces) < 4 && time.Now().Before(deadline) {
		if tok, ok := iss.Current(); ok {
			nonces[tok.Nonce] = true
		}
		time.Sleep(2 * time.Millisecond)
	}
	if len(nonces) < 4 {
		t.Errorf("issuer produced %d distinct nonces, want at least 4", len(nonces))
	}
}

func TestIssuerSelectCancelsPriorCycle(t *testing.T) {
	iss := NewIssuer(10 * time.Millisecond)
	defer iss.Deselect()

	iss.Select(1)
	second := iss.Select(2)

	if classID, ok := iss.ClassID(); !ok || classID != 2 {
		t.Fatalf("ClassID() = %d, %v; want 2, true", classID, ok)
	}
	if second.ClassID != 2 {
		t.Fatalf("Select() token classID = %d, want 2", second.ClassID)
	}

	// the old cycle must never publish again
	time.Sleep(50 * time.Millisecond)
	tok, ok := iss.Current()
	if !ok {
		t.Fatal("Current() not active after Select")
	}
	if tok.ClassID != 2 {
		t.Errorf("Current() classID = %d after reselect, want 2", tok.ClassID)
	}
}

func TestIssuerDeselect(t *testing.T) {
	iss := NewIssuer(10 * time.Millisecond)

	iss.Select(1)
	iss.Deselect()

	if _, ok := iss.Current(); ok {
		t.Error("Current() still active after Deselect")
	}

	// no issue may fire after cancellation
	tok, _ := iss.Current()
	time.Sleep(50 * time.Millisecond)
	after, _ := iss.Current()
	if after.Nonce != tok.Nonce {
		t.Error("token rotated after Deselect")
	}
}

func TestIssuerDeselectIdle(t *testing.T) {
	iss := NewIssuer(10 * time.Millisecond)
	iss.Deselect() // no-op when nothing is selected
	if _, ok := iss.Current(); ok {
		t.Error("Current() active on a fresh issuer")
	}
}
