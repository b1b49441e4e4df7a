package domain

import "math"

// MaxAmount is the largest representable amount. The balance ledger stores
// amounts as signed bigint, so values above this bound would change sign on
// the Postgres backend; the domain rejects them before any adapter sees them.
const MaxAmount uint64 = math.MaxInt64

// CheckedAdd returns a+b, or ErrOverflow if the sum does not fit in uint64.
// Donated totals must never silently wrap.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedSub returns a-b, or ErrUnderflow if b exceeds a.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}
