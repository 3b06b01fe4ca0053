package attendance

import (
	"context"
	"sync"
	"time"
)

// Issuer re-issues a fresh Token for the selected class on a fixed cadence.
// At most one issue cycle is active per Issuer: selecting a class cancels the
// running cycle before the first new token is produced, and no issue lands
// after Deselect.
type Issuer struct {
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	gen     uint64 // bumped on every Select/Deselect; stale cycles compare against it
	classID int
	token   Token
	active  bool
}

func NewIssuer(interval ...time.Duration) *Issuer {
	iss := &Issuer{interval: IssueInterval}
	if len(interval) > 0 {
		iss.interval = interval[0]
	}
	return iss
}

// Select starts issuing for classID, cancelling any prior cycle first,
// and returns the first token of the new cycle.
func (iss *Issuer) Select(classID int) Token {
	iss.mu.Lock()
	if iss.cancel != nil {
		iss.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	iss.cancel = cancel
	iss.gen++
	gen := iss.gen
	iss.classID = classID
	iss.token = NewToken(classID)
	iss.active = true
	tok := iss.token
	iss.mu.Unlock()

	go iss.run(ctx, gen, classID)
	return tok
}

// Deselect cancels the running cycle, if any.
func (iss *Issuer) Deselect() {
	iss.mu.Lock()
	defer iss.mu.Unlock()
	if iss.cancel != nil {
		iss.cancel()
		iss.cancel = nil
	}
	iss.gen++
	iss.active = false
}

// Current returns the live token; ok is false when no class is selected.
func (iss *Issuer) Current() (Token, bool) {
	iss.mu.Lock()
	defer iss.mu.Unlock()
	return iss.token, iss.active
}

// ClassID returns the selected class; ok is false when no class is selected.
func (iss *Issuer) ClassID() (int, bool) {
	iss.mu.Lock()
	defer iss.mu.Unlock()
	return iss.classID, iss.active
}

func (iss *Issuer) run(ctx context.Context, gen uint64, classID int) {
	ticker := time.NewTicker(iss.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tok := NewToken(classID)
			iss.mu.Lock()
			// a newer Select/Deselect may have won the race with this tick
			if iss.gen == gen {
				iss.token = tok
			}
			iss.mu.Unlock()
		}
	}
}
