// Package fixref replaces the REF allele of VCF records with the sequence of
// an indexed reference genome.
package fixref

import (
	"fmt"
	"log"
	"strings"

	"github.com/dasnellings/svTools/fai"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
)

// Settings for FixRef.
type Settings struct {
	Input     string // VCF
	Reference string // FASTA indexed with samtools faidx
	Output    string
	Verbose   int
}

// FixRef copies s.Input to s.Output with every REF allele read from s.Reference.
// Records on contigs absent from the reference are written unchanged.
func FixRef(s Settings) {
	idx, err := fai.Read(s.Reference + ".fai")
	exception.PanicOnErr(err)
	seeker := fasta.NewSeeker(s.Reference, "")

	records, header := vcf.GoReadToChan(s.Input)
	added := addContigs(&header, idx)
	if s.Verbose > 0 {
		log.Printf("Read %d contigs from %s, %d added to the header\n", len(idx.Contigs()), s.Reference, added)
	}
	out := fileio.EasyCreate(s.Output)
	vcf.NewWriteHeader(out, header)

	var fixed, skipped int
	for v := range records {
		err = fix(&v, seeker, idx)
		if err != nil {
			log.Printf("WARNING: %s\n", err)
			skipped++
		} else {
			fixed++
		}
		vcf.WriteVcf(out, v)
	}

	err = seeker.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	if s.Verbose > 0 {
		log.Printf("Fixed %d records, %d left unchanged\n", fixed, skipped)
	}
}

// addContigs declares every reference contig in header when it has no
// ##contig lines of its own. The lines go just before #CHROM. Returns the
// number of lines added.
func addContigs(header *vcf.Header, idx fai.Index) int {
	chromLine := len(header.Text)
	for i := range header.Text {
		if strings.HasPrefix(header.Text[i], "##contig=") {
			return 0
		}
		if strings.HasPrefix(header.Text[i], "#CHROM") {
			chromLine = i
			break
		}
	}
	contigs := idx.VcfHeader()
	text := make([]string, 0, len(header.Text)+len(contigs))
	text = append(text, header.Text[:chromLine]...)
	text = append(text, contigs...)
	header.Text = append(text, header.Text[chromLine:]...)
	return len(contigs)
}

// refSpan is the 0-based half-open reference span of v. INFO END, when
// present, takes precedence over the length of REF.
func refSpan(v vcf.Vcf) (start, end int) {
	start = v.Pos - 1
	end = start + len(v.Ref)
	for _, field := range strings.Split(v.Info, ";") {
		if !strings.HasPrefix(field, "END=") {
			continue
		}
		var e int
		if _, err := fmt.Sscanf(field, "END=%d", &e); err == nil && e > start {
			end = e
		}
	}
	return start, end
}

func fix(v *vcf.Vcf, seeker *fasta.Seeker, idx fai.Index) error {
	start, end := refSpan(*v)
	if !idx.Has(v.Chr) {
		return fmt.Errorf("%s:%d: contig %s not found in reference", v.Chr, v.Pos, v.Chr)
	}
	if start < 0 || end > idx.Size(v.Chr) {
		return fmt.Errorf("%s:%d: record extends past the end of %s (length %d)", v.Chr, v.Pos, v.Chr, idx.Size(v.Chr))
	}
	seq, err := fasta.SeekByName(seeker, v.Chr, start, end)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", v.Chr, v.Pos, err)
	}
	v.Ref = strings.ToUpper(dna.BasesToString(seq))
	return nil
}
