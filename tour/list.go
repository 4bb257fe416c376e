// Package tour implements the two-level doubly linked tour representation
// of a Hamiltonian cycle, and a handful of flat-array helpers that work on
// plain closed-tour permutations (no other package currently calls them).
//
// List partitions the n cities into O(√n) segments of O(√n) cities each.
// Next/Prev/Between are O(1); Flip splits at most two boundary segments
// and reverses a contiguous run of whole segments, both O(√n) operations,
// so long as the segment count stays O(√n) — List rebuilds itself from
// scratch every ⌈√n⌉ flips to keep that invariant from drifting as splits
// accumulate.
package tour

import "math"

// List is the two-level tour representation described above.
type List struct {
	n int

	segCities   [][]int32 // segment id -> raw-order city slice
	segReversed []bool    // segment id -> whether raw order runs against tour direction
	citySeg     []int32   // city -> owning segment id
	cityIdx     []int32   // city -> raw index within segCities[citySeg[city]]

	order      []int32 // segment ids, in tour order
	segOrderOf []int32 // segment id -> index into order (undefined for retired ids)

	flipsSinceRebuild int
	rebuildEvery      int
}

// NewList builds a two-level list from an open tour: a permutation of
// [0, n) with no closing duplicate. The tour direction is cities[0] ->
// cities[1] -> ... -> cities[n-1] -> cities[0].
func NewList(cities []int32) *List {
	l := &List{n: len(cities)}
	l.build(cities)
	return l
}

func segmentTarget(n int) int {
	s := int(math.Ceil(math.Sqrt(float64(n))))
	if s < 1 {
		s = 1
	}
	return s
}

func (l *List) build(cities []int32) {
	n := len(cities)
	segSize := segmentTarget(n)
	numSegs := (n + segSize - 1) / segSize
	if numSegs < 1 {
		numSegs = 1
	}

	l.segCities = make([][]int32, 0, numSegs)
	l.segReversed = make([]bool, 0, numSegs)
	l.citySeg = make([]int32, n)
	l.cityIdx = make([]int32, n)
	l.order = make([]int32, 0, numSegs)
	l.segOrderOf = make([]int32, 0, numSegs)

	for start := 0; start < n; start += segSize {
		end := start + segSize
		if end > n {
			end = n
		}
		id := int32(len(l.segCities))
		chunk := make([]int32, end-start)
		copy(chunk, cities[start:end])
		l.segCities = append(l.segCities, chunk)
		l.segReversed = append(l.segReversed, false)
		l.order = append(l.order, id)
		l.segOrderOf = append(l.segOrderOf, id)
		for i, c := range chunk {
			l.citySeg[c] = id
			l.cityIdx[c] = int32(i)
		}
	}
	l.flipsSinceRebuild = 0
	l.rebuildEvery = segSize
}

// Len returns the number of cities.
func (l *List) Len() int { return l.n }

func (l *List) localRank(city int32) int32 {
	s := l.citySeg[city]
	idx := l.cityIdx[city]
	if !l.segReversed[s] {
		return idx
	}
	return int32(len(l.segCities[s])-1) - idx
}

// Next returns the city that follows c in tour order.
func (l *List) Next(c int32) int32 {
	s := l.citySeg[c]
	cities := l.segCities[s]
	idx := l.cityIdx[c]
	if !l.segReversed[s] {
		if int(idx)+1 < len(cities) {
			return cities[idx+1]
		}
	} else if idx-1 >= 0 {
		return cities[idx-1]
	}
	ns := l.nextSegID(s)
	ncities := l.segCities[ns]
	if !l.segReversed[ns] {
		return ncities[0]
	}
	return ncities[len(ncities)-1]
}

// Prev returns the city that precedes c in tour order.
func (l *List) Prev(c int32) int32 {
	s := l.citySeg[c]
	cities := l.segCities[s]
	idx := l.cityIdx[c]
	if !l.segReversed[s] {
		if idx-1 >= 0 {
			return cities[idx-1]
		}
	} else if int(idx)+1 < len(cities) {
		return cities[idx+1]
	}
	ps := l.prevSegID(s)
	pcities := l.segCities[ps]
	if !l.segReversed[ps] {
		return pcities[len(pcities)-1]
	}
	return pcities[0]
}

func (l *List) nextSegID(s int32) int32 {
	ord := l.segOrderOf[s]
	nord := int(ord) + 1
	if nord >= len(l.order) {
		nord = 0
	}
	return l.order[nord]
}

func (l *List) prevSegID(s int32) int32 {
	ord := int(l.segOrderOf[s])
	pord := ord - 1
	if pord < 0 {
		pord = len(l.order) - 1
	}
	return l.order[pord]
}

// rankOf returns a composite (segment order, local rank) value that sorts
// consistently with tour order; n+1 is a safe per-segment stride since no
// segment ever holds more than n cities.
func (l *List) rankOf(c int32) int64 {
	s := l.citySeg[c]
	return int64(l.segOrderOf[s])*int64(l.n+1) + int64(l.localRank(c))
}

// Between reports whether b lies strictly between a and c when the tour is
// walked forward starting at a (i.e. a, ..., b, ..., c in that cyclic
// order). Degenerate cases (any two of a,b,c equal) return false.
func (l *List) Between(a, b, c int32) bool {
	if a == b || b == c || a == c {
		return false
	}
	ra, rb, rc := l.rankOf(a), l.rankOf(b), l.rankOf(c)
	if ra < rc {
		return ra < rb && rb < rc
	}
	return rb > ra || rb < rc
}

// splitSegment splits segment s at local rank L: s retains local ranks
// [0, L), a new segment holding local ranks [L, len) is created and
// spliced into order immediately after s. L must satisfy 0 < L < len(s).
// Returns the new segment's id.
func (l *List) splitSegment(s int32, L int32) int32 {
	cities := l.segCities[s]
	length := int32(len(cities))
	reversed := l.segReversed[s]

	var prefixRaw, suffixRaw []int32
	var suffixNeedsReindex, prefixNeedsReindex bool
	if !reversed {
		prefixRaw = cities[:L]
		suffixRaw = cities[L:]
		suffixNeedsReindex = true
	} else {
		prefixRaw = cities[length-L:]
		suffixRaw = cities[:length-L]
		prefixNeedsReindex = true
	}

	newID := int32(len(l.segCities))
	l.segCities = append(l.segCities, suffixRaw)
	l.segReversed = append(l.segReversed, reversed)
	l.segOrderOf = append(l.segOrderOf, 0) // set below, once spliced into order

	l.segCities[s] = prefixRaw

	if prefixNeedsReindex {
		for i, c := range prefixRaw {
			l.citySeg[c] = s
			l.cityIdx[c] = int32(i)
		}
	}
	for i, c := range suffixRaw {
		l.citySeg[c] = newID
		if suffixNeedsReindex {
			l.cityIdx[c] = int32(i)
		}
	}

	// Splice newID into order right after s.
	pos := int(l.segOrderOf[s])
	l.order = append(l.order, 0)
	copy(l.order[pos+2:], l.order[pos+1:len(l.order)-1])
	l.order[pos+1] = newID
	for i := pos + 1; i < len(l.order); i++ {
		l.segOrderOf[l.order[i]] = int32(i)
	}
	return newID
}

// ensureFirst splits c's segment, if necessary, so c becomes local rank 0
// of its (possibly new) segment, and returns that segment's id.
func (l *List) ensureFirst(c int32) int32 {
	s := l.citySeg[c]
	r := l.localRank(c)
	if r == 0 {
		return s
	}
	return l.splitSegment(s, r)
}

// ensureLast splits c's segment, if necessary, so c becomes the last local
// rank of its segment.
func (l *List) ensureLast(c int32) {
	s := l.citySeg[c]
	r := l.localRank(c)
	length := int32(len(l.segCities[s]))
	if r == length-1 {
		return
	}
	l.splitSegment(s, r+1)
}

// Flip reverses the path from a to b inclusive (a, ..., b walked forward),
// turning ...-prev(a)-a-...-b-next(b)-... into ...-prev(a)-b-...-a-next(b)-....
// a and b must be distinct; callers choose which of the two arcs between a
// common pair of cut edges to reverse (the shorter one, for performance —
// the result is identical either way since reversing a cycle's complement
// produces the same set of tour edges).
func (l *List) Flip(a, b int32) {
	if a == b {
		return
	}
	sa := l.ensureFirst(a)
	l.ensureLast(b)
	sb := l.citySeg[b]

	ordA := int(l.segOrderOf[sa])
	ordB := int(l.segOrderOf[sb])

	var ids []int32
	if ordA <= ordB {
		ids = append(ids, l.order[ordA:ordB+1]...)
	} else {
		ids = append(ids, l.order[ordA:]...)
		ids = append(ids, l.order[:ordB+1]...)
	}

	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	for _, id := range ids {
		l.segReversed[id] = !l.segReversed[id]
	}

	pos := ordA
	for _, id := range ids {
		l.order[pos] = id
		l.segOrderOf[id] = int32(pos)
		pos++
		if pos >= len(l.order) {
			pos = 0
		}
	}

	l.flipsSinceRebuild++
	if l.flipsSinceRebuild >= l.rebuildEvery {
		l.build(l.Sequence())
	}
}

// Sequence returns the tour as an open permutation (length n, no closing
// duplicate), starting wherever segment order 0 currently begins.
func (l *List) Sequence() []int32 {
	out := make([]int32, 0, l.n)
	for _, id := range l.order {
		cities := l.segCities[id]
		if !l.segReversed[id] {
			out = append(out, cities...)
		} else {
			for i := len(cities) - 1; i >= 0; i-- {
				out = append(out, cities[i])
			}
		}
	}
	return out
}

// ClosedSequence returns the tour as a closed array (length n+1,
// out[0]==out[n]) suitable for problem.Problem.TourLength / tsplib.WriteTour.
func (l *List) ClosedSequence() []int32 {
	seq := l.Sequence()
	out := make([]int32, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = seq[0]
	return out
}
