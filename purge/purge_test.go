package purge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dasnellings/svTools/alignment"
	"github.com/dasnellings/svTools/cigarops"
	"github.com/dasnellings/svTools/strand"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/slices"
)

func supplementary(t *testing.T, name string, start int, s strand.Strand, sa string) alignment.Record {
	partners, err := alignment.ParseSATag(sa)
	if err != nil {
		t.Fatal(err)
	}
	return alignment.Record{
		Name:          name,
		Chrom:         "chr1",
		Start:         start,
		Strand:        s,
		Cigar:         []cigarops.Element{{Op: cigarops.Match, Len: 50}},
		Supplementary: true,
		SA:            partners,
	}
}

func TestIsArtifact(t *testing.T) {
	tests := []struct {
		name     string
		rec      alignment.Record
		expected bool
	}{
		{"reverseOverlap", supplementary(t, "a", 100, strand.Forward, "chr1,120,-,40M,60,2"), true},
		{"sameStrand", supplementary(t, "a", 100, strand.Forward, "chr1,120,+,40M,60,2"), false},
		{"twoPartners", supplementary(t, "a", 100, strand.Forward, "chr1,100,-,50M,60,0;chr1,500,-,50M,60,1"), false},
		{"noOverlap", supplementary(t, "a", 100, strand.Forward, "chr1,1000,-,40M,60,2"), false},
		{"touching", supplementary(t, "a", 100, strand.Forward, "chr1,150,-,40M,60,2"), true},
		{"adjacent", supplementary(t, "a", 100, strand.Forward, "chr1,151,-,40M,60,2"), false},
		{"otherChrom", supplementary(t, "a", 100, strand.Forward, "chr2,120,-,40M,60,2"), false},
		{"reverseRecord", supplementary(t, "a", 100, strand.Reverse, "chr1,90,+,20S40M,60,2"), true},
	}
	for _, test := range tests {
		if got := IsArtifact(test.rec); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, got)
		}
	}

	primary := supplementary(t, "a", 100, strand.Forward, "chr1,120,-,40M,60,2")
	primary.Supplementary = false
	if IsArtifact(primary) {
		t.Error("primary alignment classified as artifact")
	}
	noSA := supplementary(t, "a", 100, strand.Forward, "")
	if IsArtifact(noSA) {
		t.Error("record without SA classified as artifact")
	}
}

func TestRetain(t *testing.T) {
	cands := []Candidate{
		{ReadID: "far", Chrom: "chr1", Start: 5000, End: 5050},
		{ReadID: "first", Chrom: "chr1", Start: 100, End: 150},
		{ReadID: "second", Chrom: "chr1", Start: 150, End: 200},
		{ReadID: "alone", Chrom: "chr2", Start: 120, End: 170},
	}
	keep := Retain(cands, DefaultDistance)
	if len(keep) != 2 || !keep["first"] || !keep["second"] {
		t.Error("problem retaining nearby candidates", keep)
	}

	// boundary is exclusive
	keep = Retain([]Candidate{{ReadID: "a", Chrom: "chr1", Start: 0}, {ReadID: "b", Chrom: "chr1", Start: 500}}, 500)
	if len(keep) != 0 {
		t.Error("candidates exactly distance apart should not be retained", keep)
	}

	keep = Retain([]Candidate{{ReadID: "a", Chrom: "chr1", Start: 10, End: 60}, {ReadID: "b", Chrom: "chr1", Start: 10, End: 40}}, 1)
	if len(keep) != 2 {
		t.Error("candidates sharing a start should be retained", keep)
	}

	if len(Retain(nil, DefaultDistance)) != 0 || len(Retain(cands[3:], DefaultDistance)) != 0 {
		t.Error("singletons should never be retained")
	}
}

func TestRetainIdempotent(t *testing.T) {
	cands := []Candidate{
		{ReadID: "a", Chrom: "chr1", Start: 100},
		{ReadID: "b", Chrom: "chr1", Start: 450},
		{ReadID: "c", Chrom: "chr1", Start: 2000},
		{ReadID: "d", Chrom: "chr3", Start: 7},
		{ReadID: "e", Chrom: "chr3", Start: 300},
	}
	first := Retain(cands, DefaultDistance)
	var kept []Candidate
	for i := range cands {
		if first[cands[i].ReadID] {
			kept = append(kept, cands[i])
		}
	}
	second := Retain(kept, DefaultDistance)
	if len(first) != 4 || len(second) != len(first) {
		t.Fatal("problem with retain idempotence", first, second)
	}
	for id := range first {
		if !second[id] {
			t.Error("retain is not idempotent for", id)
		}
	}
}

func TestSift(t *testing.T) {
	recs := map[string]alignment.Record{
		"primary":   {Name: "primary", Chrom: "chr1", Start: 100, Strand: strand.Reverse, Cigar: []cigarops.Element{{Op: cigarops.Match, Len: 40}}},
		"artifact1": supplementary(t, "artifact1", 100, strand.Forward, "chr1,120,-,40M,60,2"),
		"artifact2": supplementary(t, "artifact2", 300, strand.Forward, "chr1,310,-,40M,60,2"),
		"artifact3": supplementary(t, "artifact3", 9000, strand.Forward, "chr1,9010,-,40M,60,2"),
		"unmapped":  {Name: "unmapped", Unmapped: true},
	}
	order := []string{"primary", "artifact1", "unmapped", "artifact2", "artifact3"}
	reads := make(chan sam.Sam, len(order))
	for _, name := range order {
		reads <- sam.Sam{QName: name}
	}
	close(reads)

	decode := func(s *sam.Sam) (alignment.Record, error) {
		r := recs[s.QName]
		r.Raw = s
		return r, nil
	}
	var kept []string
	artifacts, stats, err := sift(reads, decode, func(s sam.Sam) { kept = append(kept, s.QName) })
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 2 || kept[0] != "primary" || kept[1] != "unmapped" {
		t.Error("problem keeping non-artifacts", kept)
	}
	if len(artifacts) != 3 || artifacts[0].Raw.QName != "artifact1" || artifacts[2].Raw.QName != "artifact3" {
		t.Error("problem collecting artifacts", artifacts)
	}
	if stats.Alignments != 5 || stats.Mapped != 4 || stats.Artifacts != 3 {
		t.Error("problem with stats", stats)
	}

	retained := retainArtifacts(artifacts, DefaultDistance)
	if len(retained) != 2 || retained[0].Name != "artifact1" || retained[1].Name != "artifact2" {
		t.Error("problem retaining artifacts", retained)
	}

	stats = Stats{Mapped: 4, Artifacts: 1}
	if stats.String() != "Detected 1 potential artefacts out of 4 alignments (25%)" {
		t.Error("problem with summary", stats.String())
	}
}

func TestSiftError(t *testing.T) {
	errBad := errors.New("bad cigar")
	reads := make(chan sam.Sam, 2)
	reads <- sam.Sam{QName: "bad"}
	reads <- sam.Sam{QName: "unread"}
	close(reads)
	_, _, err := sift(reads, func(*sam.Sam) (alignment.Record, error) { return alignment.Record{}, errBad }, func(sam.Sam) {})
	if !errors.Is(err, errBad) {
		t.Error("expected decode error, got", err)
	}
}

func readNames(filename string) []string {
	reads, _ := sam.GoReadToChan(filename)
	var ans []string
	for s := range reads {
		ans = append(ans, s.QName)
	}
	return ans
}

func TestPurge(t *testing.T) {
	for _, ext := range []string{".sam", ".bam"} {
		dir := t.TempDir()
		s := Settings{
			Input:            "testdata/reads.sam",
			Output:           filepath.Join(dir, "purged"+ext),
			CandidatesOutput: filepath.Join(dir, "candidates"+ext),
		}
		stats := Purge(s)
		if stats != (Stats{Alignments: 7, Mapped: 6, Artifacts: 3, Retained: 2}) {
			t.Errorf("%s: problem with stats %+v", ext, stats)
		}

		expected := []string{"readA", "noTags", "readD", "unmapped", "readA", "readB"}
		if got := readNames(s.Output); !slices.Equal(got, expected) {
			t.Errorf("%s: expected output %v, got %v", ext, expected, got)
		}

		expected = []string{"readA", "readB", "readC"}
		if got := readNames(s.CandidatesOutput); !slices.Equal(got, expected) {
			t.Errorf("%s: expected candidates %v, got %v", ext, expected, got)
		}
	}
}
