// Package alignment holds the read-level data model shared by the SV refinement
// tools and decodes it from gonomics sam records.
package alignment

import (
	"fmt"
	"strings"

	"github.com/dasnellings/svTools/cigarops"
	"github.com/dasnellings/svTools/strand"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
)

// sam flag bits used below
const (
	flagUnmapped      uint16 = 0x4
	flagSecondary     uint16 = 0x100
	flagSupplementary uint16 = 0x800
)

// Record is a decoded alignment. Records are read-only once built.
type Record struct {
	Name          string
	Chrom         string
	Start         int // 0-based leftmost reference position
	Strand        strand.Strand
	Cigar         []cigarops.Element
	Seq           []dna.Base
	Unmapped      bool
	Secondary     bool
	Supplementary bool
	SA            []Partner // nil when the record carries no SA tag

	// Raw is the record this was decoded from, if any. It is written back
	// unchanged by tools that filter reads.
	Raw *sam.Sam
}

// End is the 0-based exclusive end of the reference span.
func (r Record) End() int {
	return cigarops.ReferencePositionAfter(r.Start, r.Cigar)
}

// Span returns the reference interval covered by the alignment.
func (r Record) Span() Interval {
	return Interval{Chrom: r.Chrom, Start: r.Start, End: r.End()}
}

// HasSA is true when the record carried a non-empty SA tag.
func (r Record) HasSA() bool {
	return len(r.SA) > 0
}

// FromSam decodes a gonomics sam record. The returned Record keeps a pointer to s.
// An unrecognized CIGAR operation is reported with the read name attached.
func FromSam(s *sam.Sam) (Record, error) {
	var err error
	ans := Record{
		Name:          s.QName,
		Chrom:         s.RName,
		Strand:        strand.OfRead(*s),
		Seq:           s.Seq,
		Unmapped:      s.Flag&flagUnmapped != 0,
		Secondary:     s.Flag&flagSecondary != 0,
		Supplementary: s.Flag&flagSupplementary != 0,
		Raw:           s,
	}
	if s.Pos > 0 {
		ans.Start = int(s.Pos) - 1
	}

	ans.Cigar, err = cigarops.FromSam(s.Cigar)
	if err != nil {
		return ans, fmt.Errorf("read %s: %w", s.QName, err)
	}

	tag, found := saTag(s)
	if found {
		ans.SA, err = ParseSATag(tag)
		if err != nil {
			return ans, fmt.Errorf("read %s: %w", s.QName, err)
		}
	}
	return ans, nil
}

// saTag looks up the SA tag. QueryTag only understands tags as read from a
// bam file and errors for SAM text or a record without tags, in which case the
// text tags in Extra are searched instead.
func saTag(s *sam.Sam) (string, bool) {
	query, found, err := sam.QueryTag(*s, "SA")
	if err == nil {
		if !found {
			return "", false
		}
		tag, ok := query.(string)
		return tag, ok
	}
	for _, field := range strings.Split(s.Extra, "\t") {
		if strings.HasPrefix(field, "SA:Z:") {
			return strings.TrimPrefix(field, "SA:Z:"), true
		}
	}
	return "", false
}
