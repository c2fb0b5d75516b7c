package purge

import (
	"sort"

	"github.com/dasnellings/svTools/alignment"
	"github.com/dasnellings/svTools/strand"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultDistance is the proximity under which artifact candidates are kept.
const DefaultDistance = 500

// Candidate is an alignment classified as an artifact.
type Candidate struct {
	ReadID string
	Chrom  string
	Start  int
	End    int
	Strand strand.Strand
}

// NewCandidate takes the span and strand of r.
func NewCandidate(r alignment.Record) Candidate {
	return Candidate{
		ReadID: r.Name,
		Chrom:  r.Chrom,
		Start:  r.Start,
		End:    r.End(),
		Strand: r.Strand,
	}
}

// Retain returns the ids of candidates that start less than distance from the
// start of another candidate on the same chromosome. Within each chromosome
// candidates are ordered by (Start, End) and each is compared with its
// neighbors in that order. A candidate alone on its chromosome is never retained.
func Retain(cands []Candidate, distance int) map[string]bool {
	byChrom := make(map[string][]Candidate)
	for i := range cands {
		byChrom[cands[i].Chrom] = append(byChrom[cands[i].Chrom], cands[i])
	}

	chroms := maps.Keys(byChrom)
	slices.Sort(chroms)

	ans := make(map[string]bool)
	var curr []Candidate
	var d int
	for _, chrom := range chroms {
		curr = byChrom[chrom]
		sort.SliceStable(curr, func(i, j int) bool {
			if curr[i].Start != curr[j].Start {
				return curr[i].Start < curr[j].Start
			}
			return curr[i].End < curr[j].End
		})
		for i := range curr {
			d = -1
			if i > 0 {
				d = curr[i].Start - curr[i-1].Start
			}
			if i < len(curr)-1 && (d == -1 || curr[i+1].Start-curr[i].Start < d) {
				d = curr[i+1].Start - curr[i].Start
			}
			if d != -1 && d < distance {
				ans[curr[i].ReadID] = true
			}
		}
	}
	return ans
}
