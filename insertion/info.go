package insertion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/vcf"
)

var errNotInsertion = errors.New("not an insertion")

// infoValue returns the value for key in a VCF INFO column. Flags return an
// empty string and true.
func infoValue(info, key string) (string, bool) {
	var field string
	for len(info) > 0 {
		field, info, _ = strings.Cut(info, ";")
		k, v, _ := strings.Cut(field, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// infoInt parses the first value of a numeric INFO field.
func infoInt(info, key string) (int, bool, error) {
	val, found := infoValue(info, key)
	if !found {
		return 0, false, nil
	}
	val, _, _ = strings.Cut(val, ",")
	ans, err := strconv.Atoi(val)
	if err != nil {
		return 0, true, fmt.Errorf("could not parse INFO %s=%s: %w", key, val, err)
	}
	return ans, true, nil
}

// CandidateFromVcf builds a Candidate from an SVTYPE=INS record. The call spans
// [POS-1, END) when END is present, otherwise the length of REF. ExpectedLen
// is taken from SVLEN, falling back to the length difference between ALT and REF.
func CandidateFromVcf(v vcf.Vcf, radius int) (Candidate, error) {
	var c Candidate
	if svType, _ := infoValue(v.Info, "SVTYPE"); svType != "INS" {
		return c, errNotInsertion
	}
	c.Name = v.Id
	c.Chrom = v.Chr
	c.Start = v.Pos - 1
	c.End = c.Start + len(v.Ref)
	c.Radius = radius

	end, found, err := infoInt(v.Info, "END")
	if err != nil {
		return c, err
	}
	if found && end >= c.Start {
		c.End = end
	}

	c.ExpectedLen, found, err = infoInt(v.Info, "SVLEN")
	if err != nil {
		return c, err
	}
	if !found {
		if len(v.Alt) == 0 || strings.HasPrefix(v.Alt[0], "<") {
			return c, fmt.Errorf("%s:%d has no SVLEN and a symbolic ALT", v.Chr, v.Pos)
		}
		c.ExpectedLen = len(v.Alt[0]) - len(v.Ref)
	}
	return c, nil
}

// variantName is used when logging per variant outcomes.
func variantName(v vcf.Vcf) string {
	if v.Id != "" && v.Id != "." {
		return fmt.Sprintf("%s (%s:%d)", v.Id, v.Chr, v.Pos)
	}
	return fmt.Sprintf("%s:%d", v.Chr, v.Pos)
}
