package alignment

import "fmt"

// Interval is a half-open, 0-based genomic range [Start, End).
type Interval struct {
	Chrom string
	Start int
	End   int
}

func (i Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", i.Chrom, i.Start, i.End)
}

// Overlaps is true when the two intervals share at least one base.
func (i Interval) Overlaps(o Interval) bool {
	return i.Chrom == o.Chrom && i.Start < o.End && o.Start < i.End
}

// ContainsClosed reports whether pos lies within [Start, End], inclusive of End.
// Insertion breakpoints sit between bases so a breakpoint at End still belongs to the window.
func (i Interval) ContainsClosed(pos int) bool {
	return pos >= i.Start && pos <= i.End
}
