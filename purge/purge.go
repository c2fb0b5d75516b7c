package purge

import (
	"fmt"
	"log"
	"os"

	"github.com/dasnellings/svTools/alignment"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/sam"
)

// Settings for Purge.
type Settings struct {
	Input            string // SAM or BAM
	Output           string // BAM when the name ends in .bam, SAM otherwise
	CandidatesOutput string // optional, every artifact before proximity retention
	Distance         int
	Verbose          int
}

// Stats summarizes one run of Purge.
type Stats struct {
	Alignments int // records read
	Mapped     int
	Artifacts  int
	Retained   int // artifacts written back because they cluster with other artifacts
}

func (s Stats) String() string {
	var pct float64
	if s.Mapped > 0 {
		pct = 100 * float64(s.Artifacts) / float64(s.Mapped)
	}
	return fmt.Sprintf("Detected %d potential artefacts out of %d alignments (%g%%)", s.Artifacts, s.Mapped, pct)
}

type decoder func(*sam.Sam) (alignment.Record, error)

// Purge copies s.Input to s.Output without accidental 2D alignments. Artifacts
// that start close to another artifact may be real SV evidence and are
// appended to the end of the output, which is then no longer sorted.
func Purge(s Settings) Stats {
	if s.Distance <= 0 {
		s.Distance = DefaultDistance
	}
	reads, header := sam.GoReadToChan(s.Input)
	out := newWriter(s.Output, header)

	artifacts, stats, err := sift(reads, alignment.FromSam, out.Write)
	if err != nil {
		log.Fatalf("ERROR: malformed alignment in %s: %s\n", s.Input, err)
	}

	if s.CandidatesOutput != "" {
		candOut := newWriter(s.CandidatesOutput, header)
		for i := range artifacts {
			candOut.Write(*artifacts[i].Raw)
		}
		err = candOut.Close()
		exception.PanicOnErr(err)
	}

	retained := retainArtifacts(artifacts, s.Distance)
	stats.Retained = len(retained)
	fmt.Fprintln(os.Stderr, stats)
	if len(retained) > 0 {
		log.Println("WARNING: Some potential artefacts are close to another.")
		log.Println("WARNING: As this could be an SV, these reads are kept.")
		log.Println("WARNING: Output is UNSORTED.")
		for i := range retained {
			out.Write(*retained[i].Raw)
		}
	}

	err = out.Close()
	exception.PanicOnErr(err)
	if s.Verbose > 0 {
		log.Printf("Read %d alignments, %d mapped, %d artefacts, %d artefacts retained\n", stats.Alignments, stats.Mapped, stats.Artifacts, stats.Retained)
	}
	return stats
}

// sift passes every record that is not an artifact to keep and returns the
// artifacts in input order. A record that cannot be decoded stops the run.
func sift(reads <-chan sam.Sam, decode decoder, keep func(sam.Sam)) ([]alignment.Record, Stats, error) {
	var stats Stats
	var artifacts []alignment.Record
	var r alignment.Record
	var err error
	for s := range reads {
		stats.Alignments++
		curr := s // Raw must not alias the loop variable
		r, err = decode(&curr)
		if err != nil {
			return artifacts, stats, err
		}
		if !r.Unmapped {
			stats.Mapped++
		}
		if IsArtifact(r) {
			artifacts = append(artifacts, r)
			continue
		}
		keep(s)
	}
	stats.Artifacts = len(artifacts)
	return artifacts, stats, nil
}

// retainArtifacts returns the artifacts whose read id is kept by Retain, in input order.
func retainArtifacts(artifacts []alignment.Record, distance int) []alignment.Record {
	cands := make([]Candidate, len(artifacts))
	for i := range artifacts {
		cands[i] = NewCandidate(artifacts[i])
	}
	keep := Retain(cands, distance)
	var ans []alignment.Record
	for i := range artifacts {
		if keep[artifacts[i].Name] {
			ans = append(ans, artifacts[i])
		}
	}
	return ans
}
