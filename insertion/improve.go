package insertion

import (
	"context"
	"errors"
	"log"

	"github.com/dasnellings/svTools/alignment"
	"github.com/dasnellings/svTools/consensus"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
)

// Settings for Improve.
type Settings struct {
	Input           string // VCF
	Bam             string // indexed BAM, index defaults to Bam + ".bai"
	BamIndex        string
	Output          string
	Window          int
	MinInsertionLen int
	Threads         int
	Aligner         consensus.SequenceAligner
	Verbose         int
}

// Improve rewrites the ALT allele of every insertion call in s.Input with the
// consensus of the inserted sequence found in the reads of s.Bam. Records that
// are not insertions, or for which no consensus could be built, are written
// unchanged. Output order matches input order.
func Improve(s Settings) {
	records, header := vcf.GoReadToChan(s.Input)
	var variants []vcf.Vcf
	for v := range records {
		variants = append(variants, v)
	}

	src := alignment.OpenBam(s.Bam, s.BamIndex)
	refined, err := improveAll(context.Background(), variants, src, s)
	exception.PanicOnErr(err)
	err = src.Close()
	exception.PanicOnErr(err)

	out := fileio.EasyCreate(s.Output)
	vcf.NewWriteHeader(out, header)
	for i := range variants {
		vcf.WriteVcf(out, variants[i])
	}
	err = out.Close()
	exception.PanicOnErr(err)

	if s.Verbose > 0 {
		log.Printf("Refined %d of %d insertion calls\n", refined, countInsertions(variants))
	}
}

// improveAll replaces ALT in place and returns the number of refined records.
// Reads are fetched sequentially from src while consensus jobs run on
// s.Threads workers.
func improveAll(ctx context.Context, variants []vcf.Vcf, src alignment.Source, s Settings) (int, error) {
	if s.Window <= 0 {
		s.Window = DefaultWindow
	}
	if s.MinInsertionLen <= 0 {
		s.MinInsertionLen = DefaultMinInsertionLen
	}
	if s.Aligner == nil {
		s.Aligner = consensus.Muscle{}
	}

	jobs := make(chan consensus.Job, s.Threads+1)
	results := consensus.GoBuild(ctx, s.Aligner, jobs, s.Threads)

	fetchErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		var c Candidate
		var recs []alignment.Record
		var err error
		for i := range variants {
			c, err = CandidateFromVcf(variants[i], s.Window)
			if errors.Is(err, errNotInsertion) {
				continue
			}
			if err != nil {
				log.Printf("WARNING: skipping %s: %s\n", variantName(variants[i]), err)
				continue
			}
			recs, err = src.Fetch(c.Window())
			if err != nil {
				fetchErr <- err
				return
			}
			seqs := FilterByLength(Extract(c, recs, s.MinInsertionLen), c.ExpectedLen)
			if s.Verbose > 1 {
				log.Printf("%s: %d reads, %d inserted sequences of expected length\n", variantName(variants[i]), len(recs), len(seqs))
			}
			jobs <- consensus.Job{Index: i, Name: variantName(variants[i]), Seqs: sequenceStrings(seqs)}
		}
	}()

	var refined int
	for r := range results {
		switch {
		case r.Err == nil:
			variants[r.Index].Alt = []string{r.Consensus}
			refined++
		case errors.Is(r.Err, consensus.ErrInsufficientEvidence):
			if s.Verbose > 0 {
				log.Printf("%s: insufficient evidence, keeping original allele\n", r.Name)
			}
		default:
			log.Printf("WARNING: %s: %s\n", r.Name, r.Err)
		}
	}

	select {
	case err := <-fetchErr:
		return refined, err
	default:
		return refined, nil
	}
}

func sequenceStrings(seqs []Sequence) []string {
	ans := make([]string, len(seqs))
	for i := range seqs {
		ans[i] = seqs[i].Seq
	}
	return ans
}

func countInsertions(variants []vcf.Vcf) int {
	var ans int
	for i := range variants {
		if svType, _ := infoValue(variants[i].Info, "SVTYPE"); svType == "INS" {
			ans++
		}
	}
	return ans
}
