package fitness

import (
	"testing"
)

func TestNormalizeInverse(t *testing.T) {
	norm := NormalizeInverse(100.0)

	// At 0: 1/(1+0) = 1.0
	if v := norm(0); v != 1.0 {
		t.Errorf("expected 1.0 at 0, got %v", v)
	}

	// At 100: 1/(1+1) = 0.5
	if v := norm(100); v != 0.5 {
		t.Errorf("expected 0.5 at scale, got %v", v)
	}

	// At 300: 1/(1+3) = 0.25
	if v := norm(300); v != 0.25 {
		t.Errorf("expected 0.25 at 3x scale, got %v", v)
	}
}

func TestNormalizeInverse_UnitScale(t *testing.T) {
	norm := NormalizeInverse(0)

	prev := norm(0)
	for d := 1; d <= 60; d++ {
		v := norm(float64(d))
		if v <= 0 || v >= prev {
			t.Fatalf("distance %d: expected strictly decreasing positive score, got %v after %v", d, v, prev)
		}
		if want := 1.0 / float64(d+1); v != want {
			t.Errorf("distance %d: expected %v, got %v", d, want, v)
		}
		prev = v
	}

	if v := norm(-3); v != 1.0 {
		t.Errorf("expected negative input to clamp to 1.0, got %v", v)
	}
}

func TestIsPerfect(t *testing.T) {
	if !IsPerfect(Perfect) {
		t.Error("Perfect should be perfect")
	}
	if IsPerfect(0.5) {
		t.Error("0.5 should not be perfect")
	}
}
