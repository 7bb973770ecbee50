package folio

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d blocked, want allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("attempt 4 allowed, want blocked")
	}
}

func TestLoginLimiterPerIP(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)

	if !l.Allow("1.1.1.1") {
		t.Fatal("first IP blocked")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("second IP blocked by first IP's attempts")
	}
}

func TestLoginLimiterStop(t *testing.T) {
	l := NewLoginLimiter(1, time.Minute)
	l.Stop()
	l.Stop() // idempotent

	// The limit is enforced by Allow itself, so it survives the sweep ending.
	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt after Stop blocked")
	}
	if l.Allow("1.2.3.4") {
		t.Error("limit not enforced after Stop")
	}
}

func TestLoginLimiterWindowSlides(t *testing.T) {
	l := NewLoginLimiter(1, 20*time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt blocked")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("second attempt inside window allowed")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Error("attempt after window still blocked")
	}
}
