package fai

import (
	"testing"
)

func TestRead(t *testing.T) {
	idx, err := Read("testdata/test.fa.fai")
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Contigs()) != 2 || !idx.Has("chr1") || !idx.Has("chr2") || idx.Has("chr3") {
		t.Error("problem reading contigs", idx)
	}
	if idx.Size("chr1") != 20 || idx.Size("chr2") != 8 || idx.Size("chr3") != -1 {
		t.Error("problem with contig sizes")
	}
	if idx.Contigs()[1] != (Contig{Name: "chr2", Len: 8, Offset: 34, BasesPerLine: 8, BytesPerLine: 9}) {
		t.Error("problem parsing contig", idx.Contigs()[1])
	}
	if idx.String() != "chr1\t20\t6\t10\t11\nchr2\t8\t34\t8\t9\n" {
		t.Error("problem writing index", idx.String())
	}
	header := idx.VcfHeader()
	if len(header) != 2 || header[0] != "##contig=<ID=chr1,length=20>" {
		t.Error("problem with vcf header", header)
	}

	if _, err = Read("testdata/malformed.fa.fai"); err == nil {
		t.Error("expected error for malformed index")
	}
}
