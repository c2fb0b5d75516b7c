package fixref

import (
	"testing"

	"github.com/dasnellings/svTools/fai"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/vcf"
)

func TestFix(t *testing.T) {
	idx, err := fai.Read("testdata/ref.fa.fai")
	if err != nil {
		t.Fatal(err)
	}
	seeker := fasta.NewSeeker("testdata/ref.fa", "")
	defer func() {
		err := seeker.Close()
		exception.PanicOnErr(err)
	}()

	tests := []struct {
		in       vcf.Vcf
		expected string
		fails    bool
	}{
		{vcf.Vcf{Chr: "chr1", Pos: 3, Ref: "N", Alt: []string{"T"}}, "G", false},
		{vcf.Vcf{Chr: "chr1", Pos: 9, Ref: "NNNN", Alt: []string{"N"}}, "ACGG", false},
		{vcf.Vcf{Chr: "chr2", Pos: 1, Ref: "N", Alt: []string{"<DEL>"}, Info: "SVTYPE=DEL;END=4"}, "TTTT", false},
		{vcf.Vcf{Chr: "chr3", Pos: 1, Ref: "N", Alt: []string{"A"}}, "N", true},
		{vcf.Vcf{Chr: "chr2", Pos: 8, Ref: "NN", Alt: []string{"A"}}, "NN", true},
	}
	for _, test := range tests {
		v := test.in
		err = fix(&v, seeker, idx)
		if (err != nil) != test.fails {
			t.Errorf("%s:%d: unexpected error state: %v", v.Chr, v.Pos, err)
		}
		if v.Ref != test.expected {
			t.Errorf("%s:%d: expected REF %s, found %s", v.Chr, v.Pos, test.expected, v.Ref)
		}
	}
}

func TestRefSpan(t *testing.T) {
	start, end := refSpan(vcf.Vcf{Pos: 101, Ref: "AC"})
	if start != 100 || end != 102 {
		t.Error("problem with span from REF", start, end)
	}
	start, end = refSpan(vcf.Vcf{Pos: 101, Ref: "A", Info: "SVTYPE=DEL;SVLEN=-50;END=150"})
	if start != 100 || end != 150 {
		t.Error("problem with span from END", start, end)
	}
}

func TestAddContigs(t *testing.T) {
	idx, err := fai.Read("testdata/ref.fa.fai")
	if err != nil {
		t.Fatal(err)
	}
	header := vcf.Header{Text: []string{"##fileformat=VCFv4.2", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"}}
	if added := addContigs(&header, idx); added != 2 {
		t.Fatal("expected 2 contig lines, added", added)
	}
	expected := []string{
		"##fileformat=VCFv4.2",
		"##contig=<ID=chr1,length=20>",
		"##contig=<ID=chr2,length=8>",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	}
	if len(header.Text) != len(expected) {
		t.Fatal("problem adding contigs", header.Text)
	}
	for i := range expected {
		if header.Text[i] != expected[i] {
			t.Errorf("header line %d: expected %s, found %s", i, expected[i], header.Text[i])
		}
	}

	if added := addContigs(&header, idx); added != 0 || len(header.Text) != len(expected) {
		t.Error("contigs were added to a header that already declares them", header.Text)
	}
}
