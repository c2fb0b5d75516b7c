package alignment

import (
	"path/filepath"
	"testing"

	"github.com/dasnellings/svTools/cigarops"
	"github.com/dasnellings/svTools/strand"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

const readsSam = "testdata/reads.sam"

func decodeAll(t *testing.T, reads []sam.Sam) map[string]Record {
	ans := make(map[string]Record)
	for i := range reads {
		r, err := FromSam(&reads[i])
		if err != nil {
			t.Fatalf("could not decode %s: %s", reads[i].QName, err)
		}
		ans[r.Name] = r
	}
	return ans
}

func checkDecoded(t *testing.T, input string, recs map[string]Record) {
	if len(recs) != 4 {
		t.Fatalf("%s: expected 4 records, found %d", input, len(recs))
	}

	m := recs["mapped"]
	if m.Unmapped || m.Supplementary || m.Chrom != "chr1" || m.Start != 100 || m.End() != 150 || m.Strand != strand.Forward || m.HasSA() {
		t.Errorf("%s: problem decoding mapped read %+v", input, m)
	}

	s := recs["supplementary"]
	if !s.Supplementary || len(s.SA) != 1 {
		t.Fatalf("%s: problem decoding supplementary read %+v", input, s)
	}
	if s.SA[0].Chrom != "chr1" || s.SA[0].Start != 120 || s.SA[0].End() != 160 || s.SA[0].Strand != strand.Reverse || s.SA[0].NM != 2 {
		t.Errorf("%s: problem decoding SA tag %+v", input, s.SA[0])
	}

	n := recs["noTags"]
	if n.Strand != strand.Reverse || n.Start != 200 || n.End() != 230 || n.SA != nil || cigarops.String(n.Cigar) != "20S30M" {
		t.Errorf("%s: problem decoding read without tags %+v", input, n)
	}

	u := recs["unmapped"]
	if !u.Unmapped || u.Cigar != nil || u.HasSA() || len(u.Seq) != 30 {
		t.Errorf("%s: problem decoding unmapped read %+v", input, u)
	}
}

func TestFromSamText(t *testing.T) {
	reads, _ := sam.Read(readsSam)
	checkDecoded(t, readsSam, decodeAll(t, reads))
}

func TestFromSamBam(t *testing.T) {
	reads, header := sam.Read(readsSam)
	bamFile := filepath.Join(t.TempDir(), "reads.bam")
	out := fileio.EasyCreate(bamFile)
	bw := sam.NewBamWriter(out, header)
	for i := range reads {
		sam.WriteToBamFileHandle(bw, reads[i], 0)
	}
	err := bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	records, _ := sam.GoReadToChan(bamFile)
	var fromBam []sam.Sam
	for s := range records {
		fromBam = append(fromBam, s)
	}
	checkDecoded(t, bamFile, decodeAll(t, fromBam))
}

func TestFromSamMalformedSA(t *testing.T) {
	s := sam.Sam{QName: "bad", RName: "chr1", Pos: 1, Extra: "NM:i:0\tSA:Z:chr1,abc,-,40M,60,2;"}
	if _, err := FromSam(&s); err == nil {
		t.Error("expected error for malformed SA tag")
	}
}
