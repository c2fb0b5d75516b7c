package cigarops

// Walker tracks the reference and query cursors while stepping through a CIGAR
// from left to right. Ref starts at the alignment start and Query at 0.
type Walker struct {
	Ref   int // reference coordinate reached after the ops seen so far
	Query int // offset into SEQ reached after the ops seen so far
}

// NewWalker returns a Walker positioned at the start of an alignment.
func NewWalker(refStart int) Walker {
	return Walker{Ref: refStart}
}

// Advance moves the cursors past e. Only reference-consuming ops move Ref and
// only query-consuming ops move Query.
func (w *Walker) Advance(e Element) {
	if e.Op.ConsumesReference() {
		w.Ref += e.Len
	}
	if e.Op.ConsumesQuery() {
		w.Query += e.Len
	}
}

// Walk calls fn for every element of c with the cursor positioned before that
// element. Walking stops early when fn returns false.
func Walk(refStart int, c []Element, fn func(w Walker, e Element) bool) {
	w := NewWalker(refStart)
	for i := range c {
		if !fn(w, c[i]) {
			return
		}
		w.Advance(c[i])
	}
}
