package strand

import (
	"fmt"

	"github.com/vertgenlab/gonomics/sam"
)

// Strand is the reference strand an alignment maps to.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

// Parse converts '+' or '-' (as written in SA tags) to a Strand.
func Parse(s string) (Strand, error) {
	if len(s) != 1 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("malformed strand %q: must be '+' or '-'", s)
	}
	return Strand(s[0]), nil
}

// OfRead returns the strand of a sam record based on the reverse-complement flag.
func OfRead(s sam.Sam) Strand {
	if sam.IsPosStrand(s) {
		return Forward
	}
	return Reverse
}

func (s Strand) String() string {
	return string(s)
}

// IsReverse is true for alignments to the minus strand.
func (s Strand) IsReverse() bool {
	return s == Reverse
}
