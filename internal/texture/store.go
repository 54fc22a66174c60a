package texture

const chunkSize = 64

// store is a segmented arena of handles. Chunks are allocated whole and never
// moved, so the address of a handle survives any number of later insertions.
type store struct {
	chunks []*[chunkSize]Handle
	n      int
}

func (s *store) alloc() *Handle {
	if s.n == len(s.chunks)*chunkSize {
		s.chunks = append(s.chunks, new([chunkSize]Handle))
	}
	h := &s.chunks[s.n/chunkSize][s.n%chunkSize]
	s.n++
	return h
}

// each visits handles in allocation order, which is registration order.
func (s *store) each(fn func(i int, h *Handle)) {
	for i := 0; i < s.n; i++ {
		fn(i, &s.chunks[i/chunkSize][i%chunkSize])
	}
}

func (s *store) len() int {
	return s.n
}

// reset drops every chunk. Handles handed out earlier stay valid memory but are
// no longer reachable from the registry.
func (s *store) reset() {
	s.chunks = nil
	s.n = 0
}
