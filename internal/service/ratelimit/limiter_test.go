package ratelimit

import "testing"

func TestAllowBurstsToCapacityThenBlocks(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("chart", 3, 0) {
			t.Fatalf("request %d should pass within capacity", i+1)
		}
	}
	if l.Allow("chart", 3, 0) {
		t.Fatal("request beyond capacity should block with zero refill")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("chart", 1, 0) {
		t.Fatal("chart bucket should start full")
	}
	if l.Allow("chart", 1, 0) {
		t.Fatal("chart bucket should be drained")
	}
	if !l.Allow("gex", 1, 0) {
		t.Fatal("gex bucket should be untouched by chart drain")
	}
}
