package strand

import (
	"testing"

	"github.com/vertgenlab/gonomics/sam"
)

func TestParse(t *testing.T) {
	s, err := Parse("+")
	if err != nil || s != Forward || s.IsReverse() || s.String() != "+" {
		t.Error("problem parsing forward strand", s, err)
	}
	s, err = Parse("-")
	if err != nil || s != Reverse || !s.IsReverse() || s.String() != "-" {
		t.Error("problem parsing reverse strand", s, err)
	}
	for _, bad := range []string{"", ".", "++", "*"} {
		if _, err = Parse(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

func TestOfRead(t *testing.T) {
	if OfRead(sam.Sam{Flag: 0}) != Forward || OfRead(sam.Sam{Flag: 2048}) != Forward {
		t.Error("expected forward strand")
	}
	if OfRead(sam.Sam{Flag: 16}) != Reverse || OfRead(sam.Sam{Flag: 16 + 2048}) != Reverse {
		t.Error("expected reverse strand")
	}
}
