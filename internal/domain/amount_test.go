package domain

import (
	"errors"
	"math"
	"testing"
)

func TestCheckedAdd(t *testing.T) {
	if got, err := CheckedAdd(2, 3); err != nil || got != 5 {
		t.Fatalf("CheckedAdd(2, 3) = %d, %v", got, err)
	}
	if got, err := CheckedAdd(math.MaxUint64, 0); err != nil || got != math.MaxUint64 {
		t.Fatalf("CheckedAdd(max, 0) = %d, %v", got, err)
	}
	if _, err := CheckedAdd(math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, err := CheckedAdd(1, math.MaxUint64); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestCheckedSub(t *testing.T) {
	if got, err := CheckedSub(5, 3); err != nil || got != 2 {
		t.Fatalf("CheckedSub(5, 3) = %d, %v", got, err)
	}
	if got, err := CheckedSub(5, 5); err != nil || got != 0 {
		t.Fatalf("CheckedSub(5, 5) = %d, %v", got, err)
	}
	if _, err := CheckedSub(3, 5); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
}
