package engine

// ring gives circular access to a closed vertex sequence.
type ring[T any] []T

// idx maps any integer onto a valid index.
func (r ring[T]) idx(i int) int {
	n := len(r)
	return ((i % n) + n) % n
}

func (r ring[T]) at(i int) T   { return r[r.idx(i)] }
func (r ring[T]) prev(i int) T { return r.at(i - 1) }
func (r ring[T]) next(i int) T { return r.at(i + 1) }

// rotate returns a copy starting at index start.
func (r ring[T]) rotate(start int) []T {
	out := make([]T, 0, len(r))
	for k := 0; k < len(r); k++ {
		out = append(out, r.at(start+k))
	}
	return out
}

// span returns the inclusive circular slice from i to j walking forward.
func (r ring[T]) span(i, j int) []T {
	i, j = r.idx(i), r.idx(j)
	var out []T
	for k := i; ; k = r.idx(k + 1) {
		out = append(out, r[k])
		if k == j {
			return out
		}
	}
}
