// Package valgen provides closures that generate stream word patterns.
package valgen

// MakeIncreasingGen returns a generator yielding start, start+1, ...
func MakeIncreasingGen(start uint32) func() uint32 {
	current := start
	return func() uint32 {
		v := current
		current++
		return v
	}
}

// Take collects the next n values of gen.
func Take(gen func() uint32, n uint32) []uint32 {
	vals := make([]uint32, n)
	for i := range vals {
		vals[i] = gen()
	}

	return vals
}
