package models

import "testing"

func TestNewForceVector(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	fv, ok := NewForceVector(values)
	if !ok {
		t.Fatal("expected complete vector to be accepted")
	}
	if fv[AxialI] != 1 || fv[MomentZJ] != 12 {
		t.Fatalf("unexpected vector: %v", fv)
	}

	if _, ok := NewForceVector(values[:11]); ok {
		t.Fatal("expected short vector to be rejected")
	}
	if _, ok := NewForceVector(nil); ok {
		t.Fatal("expected nil slice to be rejected")
	}

	// Extra trailing values are ignored rather than rejected.
	long := append(values, 99)
	fv, ok = NewForceVector(long)
	if !ok || fv[MomentZJ] != 12 {
		t.Fatalf("expected truncation at twelve values, got %v (%v)", fv, ok)
	}
}

func TestParseLoadCase(t *testing.T) {
	lc, err := ParseLoadCase("D")
	if err != nil || lc != LoadDead {
		t.Fatalf("unexpected result: %v, %v", lc, err)
	}
	lc, err = ParseLoadCase("lr")
	if err != nil || lc != LoadRoofLive {
		t.Fatalf("expected case-insensitive match, got %v, %v", lc, err)
	}
	if _, err := ParseLoadCase("X"); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}
