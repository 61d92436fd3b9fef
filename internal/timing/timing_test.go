package timing

import (
	"testing"
	"time"
)

func TestMillisecondsMonotonic(t *testing.T) {
	a := Milliseconds()
	time.Sleep(2 * time.Millisecond)
	b := Milliseconds()
	if b <= a {
		t.Fatalf("clock went backwards: %g then %g", a, b)
	}
}

func TestSleepDuration(t *testing.T) {
	start := time.Now()
	Sleep(5)
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("slept only %v", elapsed)
	}
}

func TestSleepNonPositiveReturnsImmediately(t *testing.T) {
	start := time.Now()
	Sleep(0)
	Sleep(-10)
	if elapsed := time.Since(start); elapsed > 2*time.Millisecond {
		t.Fatalf("non-positive sleep took %v", elapsed)
	}
}
