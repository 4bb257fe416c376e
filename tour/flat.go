package tour

import "errors"

// Sentinel errors for the flat-array helpers below.
var (
	ErrDimensionMismatch = errors.New("tour: dimension mismatch")
	ErrStartOutOfRange   = errors.New("tour: start vertex out of range")
)

// ValidateTour enforces Hamiltonian-cycle invariants on a closed tour:
// len(tour)==n+1, tour[0]==tour[n]==start, and every vertex in [0,n)
// appears exactly once among positions [0,n).
func ValidateTour(t []int32, n int, start int32) error {
	if n <= 0 || len(t) != n+1 {
		return ErrDimensionMismatch
	}
	if start < 0 || int(start) >= n {
		return ErrStartOutOfRange
	}
	if t[0] != start || t[n] != start {
		return ErrDimensionMismatch
	}
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		v := t[i]
		if v < 0 || int(v) >= n || seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}
	return nil
}

// RotateToStart returns a fresh closed-tour copy rotated so out[0]==start.
// t may be closed (len n+1) or open (len n); the result is always closed.
func RotateToStart(t []int32, start int32) ([]int32, error) {
	if len(t) == 0 {
		return nil, ErrDimensionMismatch
	}
	n := len(t)
	if t[0] == t[n-1] {
		n--
	}
	pivot := -1
	for i := 0; i < n; i++ {
		if t[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrDimensionMismatch
	}
	out := make([]int32, n+1)
	for i := 0; i < n; i++ {
		out[i] = t[(pivot+i)%n]
	}
	out[n] = start
	return out, nil
}

// CanonicalizeOrientation fixes tour direction under a fixed start: if the
// right neighbor of out[0] is numerically greater than the left neighbor,
// the interior is reversed in place so the same cyclic tour always prints
// in one unique orientation.
func CanonicalizeOrientation(t []int32) error {
	if len(t) < 3 {
		return ErrDimensionMismatch
	}
	n := len(t) - 1
	if t[0] != t[n] {
		return ErrDimensionMismatch
	}
	if t[1] > t[n-1] {
		for i, j := 1, n-1; i < j; i, j = i+1, j-1 {
			t[i], t[j] = t[j], t[i]
		}
	}
	return nil
}

// Copy returns an independent copy of t.
func Copy(t []int32) []int32 {
	if t == nil {
		return nil
	}
	out := make([]int32, len(t))
	copy(out, t)
	return out
}

// Equal reports whether two closed tours describe the same cyclic sequence
// under rotation (fixed start value, same direction).
func Equal(a, b []int32) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	n := len(a) - 1
	start := a[0]
	if a[n] != start || b[n] != b[0] {
		return false
	}
	p := -1
	for j := 0; j < n; j++ {
		if b[j] == start {
			p = j
			break
		}
	}
	if p == -1 {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			return false
		}
	}
	return true
}
