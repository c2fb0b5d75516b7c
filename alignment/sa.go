package alignment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasnellings/svTools/cigarops"
	"github.com/dasnellings/svTools/strand"
)

// Partner is one entry of an SA tag: another alignment of the same read.
type Partner struct {
	Chrom  string
	Start  int // tag position, unadjusted
	Strand strand.Strand
	Cigar  []cigarops.Element
	MapQ   int
	NM     int
}

// End is the exclusive end of the partner's reference span, Start plus the
// reference length of its CIGAR.
func (p Partner) End() int {
	return cigarops.ReferencePositionAfter(p.Start, p.Cigar)
}

// ParseSATag parses "rname,pos,strand,CIGAR,mapQ,NM;" entries. Positions are
// kept exactly as written in the tag, so "chr1,120,-,40M" spans 120 to 160.
// Empty entries (the trailing ';') are skipped.
func ParseSATag(tag string) ([]Partner, error) {
	var ans []Partner
	var p Partner
	var err error
	for _, entry := range strings.Split(tag, ";") {
		if entry == "" {
			continue
		}
		words := strings.Split(entry, ",")
		if len(words) != 6 {
			return nil, fmt.Errorf("malformed SA entry %q: expected 6 fields, found %d", entry, len(words))
		}
		p.Chrom = words[0]
		p.Start, err = strconv.Atoi(words[1])
		if err != nil {
			return nil, fmt.Errorf("malformed SA entry %q: %w", entry, err)
		}
		p.Strand, err = strand.Parse(words[2])
		if err != nil {
			return nil, fmt.Errorf("malformed SA entry %q: %w", entry, err)
		}
		p.Cigar, err = cigarops.Parse(words[3])
		if err != nil {
			return nil, fmt.Errorf("malformed SA entry %q: %w", entry, err)
		}
		p.MapQ, err = strconv.Atoi(words[4])
		if err != nil {
			return nil, fmt.Errorf("malformed SA entry %q: %w", entry, err)
		}
		p.NM, err = strconv.Atoi(words[5])
		if err != nil {
			return nil, fmt.Errorf("malformed SA entry %q: %w", entry, err)
		}
		ans = append(ans, p)
	}
	return ans, nil
}
