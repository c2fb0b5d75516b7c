// Package insertion collects inserted read sequence supporting an insertion call
// and uses it to refine the inserted allele.
package insertion

import (
	"github.com/dasnellings/svTools/alignment"
	"github.com/dasnellings/svTools/cigarops"
	"github.com/vertgenlab/gonomics/dna"
)

// Default values used by the insseq and wobble commands.
const (
	DefaultWindow          = 250
	DefaultMinInsertionLen = 25
	minLenFraction         = 0.75
	maxLenFraction         = 1.25
)

// Candidate is an insertion call whose inserted sequence we want to refine.
// Reads contribute evidence when an insertion starts within
// [Start-Radius, End+Radius]. A candidate given as a single midpoint has Start == End.
type Candidate struct {
	Name        string
	Chrom       string
	Start       int // 0-based
	End         int
	ExpectedLen int
	Radius      int
}

// Midpoint is the center of the called breakpoint.
func (c Candidate) Midpoint() int {
	return (c.Start + c.End) / 2
}

// Window is the region reads are fetched from and insertion positions must fall within.
func (c Candidate) Window() alignment.Interval {
	return alignment.Interval{Chrom: c.Chrom, Start: c.Start - c.Radius, End: c.End + c.Radius}
}

// Sequence is an inserted fragment taken from one read.
type Sequence struct {
	ReadID string
	Seq    string
}

// Extract returns at most one inserted fragment per read. A fragment is taken
// from the first insertion longer than minInsertionLen whose reference position
// lies inside the candidate window. Secondary alignments are ignored.
// Fragments from reverse strand reads are reverse complemented.
func Extract(c Candidate, records []alignment.Record, minInsertionLen int) []Sequence {
	window := c.Window()
	var ans []Sequence
	for i := range records {
		if records[i].Secondary || records[i].Chrom != c.Chrom || !records[i].Span().Overlaps(window) {
			continue
		}
		if frag, found := firstInsertion(records[i], window, minInsertionLen); found {
			ans = append(ans, Sequence{ReadID: records[i].Name, Seq: frag})
		}
	}
	return ans
}

func firstInsertion(r alignment.Record, window alignment.Interval, minInsertionLen int) (string, bool) {
	var frag []dna.Base
	var found bool
	cigarops.Walk(r.Start, r.Cigar, func(w cigarops.Walker, e cigarops.Element) bool {
		if e.Op != cigarops.Insertion || e.Len <= minInsertionLen || !window.ContainsClosed(w.Ref) {
			return true
		}
		if w.Query+e.Len > len(r.Seq) { // SEQ is "*" or shorter than the cigar claims
			return false
		}
		frag = make([]dna.Base, e.Len)
		copy(frag, r.Seq[w.Query:w.Query+e.Len])
		found = true
		return false
	})
	if !found {
		return "", false
	}
	if r.Strand.IsReverse() {
		dna.ReverseComplement(frag)
	}
	return dna.BasesToString(frag), true
}

// FilterByLength keeps fragments whose length is strictly between 0.75 and 1.25
// times expectedLen. The sign of expectedLen is ignored.
func FilterByLength(seqs []Sequence, expectedLen int) []Sequence {
	if expectedLen < 0 {
		expectedLen = -expectedLen
	}
	lower := float64(expectedLen) * minLenFraction
	upper := float64(expectedLen) * maxLenFraction
	var ans []Sequence
	for i := range seqs {
		l := float64(len(seqs[i].Seq))
		if l > lower && l < upper {
			ans = append(ans, seqs[i])
		}
	}
	return ans
}

// ReverseComplement returns the reverse complement of a nucleotide string.
func ReverseComplement(s string) string {
	b := dna.StringToBases(s)
	dna.ReverseComplement(b)
	return dna.BasesToString(b)
}
