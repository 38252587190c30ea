package table

import "errors"

// ErrIndexOutOfRange is returned by positional access outside [0, Len).
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrInvalidStep is returned when a slice step is not positive.
var ErrInvalidStep = errors.New("slice step must be positive")

// Bounds resolves a (start, stop, step) slice request against a sequence of length n
// and returns the selected positions. Negative start/stop count from the end and
// out-of-range values are clamped, as with Python slices.
func Bounds(n, start, stop, step int) ([]int, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}

	lo, hi := clamp(n, start), clamp(n, stop)
	if lo >= hi {
		return []int{}, nil
	}

	out := make([]int, 0, (hi-lo+step-1)/step)
	for i := lo; i < hi; i += step {
		out = append(out, i)
	}
	return out, nil
}

func clamp(n, v int) int {
	if v < 0 {
		v += n
	}
	return max(0, min(v, n))
}
