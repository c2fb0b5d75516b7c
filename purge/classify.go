// Package purge removes accidental 2D alignments: supplementary alignments that
// are a reverse complement copy of their own primary alignment.
package purge

import (
	"github.com/dasnellings/svTools/alignment"
	"github.com/vertgenlab/gonomics/numbers"
)

// IsArtifact reports whether r is an accidental 2D alignment. r must be a
// supplementary alignment whose SA tag names exactly one partner. That partner
// must map to the other strand of the same chromosome and its reference span
// must overlap the span of r, counting shared endpoints as overlap.
// Records with two or more partners are never classified as artifacts.
func IsArtifact(r alignment.Record) bool {
	if !r.Supplementary || len(r.SA) != 1 {
		return false
	}
	p := r.SA[0]
	if p.Strand == r.Strand || p.Chrom != r.Chrom {
		return false
	}
	return numbers.Max(p.Start, r.Start) <= numbers.Min(p.End(), r.End())
}
