// Package cigarops decodes alignment CIGARs into an explicit operation type and
// walks them to translate between query offsets and reference coordinates.
package cigarops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vertgenlab/gonomics/cigar"
)

// Op is a single CIGAR operation type.
type Op byte

const (
	Match       Op = iota // M: alignment match (sequence match or mismatch)
	Insertion             // I: insertion to the reference
	Deletion              // D: deletion from the reference
	RefSkip               // N: skipped region from the reference
	SoftClip              // S: clipped sequence present in SEQ
	HardClip              // H: clipped sequence absent from SEQ
	Padding               // P: silent deletion from padded reference
	SeqMatch              // =: sequence match
	SeqMismatch           // X: sequence mismatch
	Back                  // B: skip backwards
	numOps
)

var opLetters = [numOps]byte{'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X', 'B'}

// consumes records whether each Op advances the query and/or reference cursor.
var consumes = [numOps]struct{ query, ref bool }{
	Match:       {query: true, ref: true},
	Insertion:   {query: true, ref: false},
	Deletion:    {query: false, ref: true},
	RefSkip:     {query: false, ref: true},
	SoftClip:    {query: true, ref: false},
	HardClip:    {query: false, ref: false},
	Padding:     {query: false, ref: false},
	SeqMatch:    {query: true, ref: true},
	SeqMismatch: {query: true, ref: true},
	Back:        {query: false, ref: true},
}

// ErrInvalidCigarOperation is matched by every error returned for an unrecognized op code.
var ErrInvalidCigarOperation = errors.New("invalid cigar operation")

// InvalidOpError reports an op code outside of MIDNSHP=XB.
type InvalidOpError struct {
	Code rune
}

func (e *InvalidOpError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidCigarOperation, e.Code)
}

func (e *InvalidOpError) Is(target error) bool {
	return target == ErrInvalidCigarOperation
}

// OpFromLetter returns the Op for a SAM CIGAR letter.
func OpFromLetter(c rune) (Op, error) {
	for i := range opLetters {
		if rune(opLetters[i]) == c {
			return Op(i), nil
		}
	}
	return 0, &InvalidOpError{Code: c}
}

// Valid reports whether o is one of the ten defined operations.
func (o Op) Valid() bool {
	return o < numOps
}

// ConsumesReference is true for M, D, N, =, X and B.
func (o Op) ConsumesReference() bool {
	return o.Valid() && consumes[o].ref
}

// ConsumesQuery is true for M, I, S, = and X.
func (o Op) ConsumesQuery() bool {
	return o.Valid() && consumes[o].query
}

// String returns the SAM letter of the operation, or "?" if o is not valid.
func (o Op) String() string {
	if !o.Valid() {
		return "?"
	}
	return string(opLetters[o])
}

// Element is one (operation, length) run of a CIGAR.
type Element struct {
	Op  Op
	Len int
}

func (e Element) String() string {
	return fmt.Sprintf("%d%s", e.Len, e.Op)
}

// String formats a list of elements as a SAM CIGAR string. An empty list is "*".
func String(c []Element) string {
	if len(c) == 0 {
		return "*"
	}
	s := new(strings.Builder)
	for i := range c {
		s.WriteString(c[i].String())
	}
	return s.String()
}

// ReferenceLength is the number of reference bases spanned by c.
func ReferenceLength(c []Element) int {
	var ans int
	for i := range c {
		if c[i].Op.ConsumesReference() {
			ans += c[i].Len
		}
	}
	return ans
}

// QueryLength is the number of bases of SEQ described by c.
func QueryLength(c []Element) int {
	var ans int
	for i := range c {
		if c[i].Op.ConsumesQuery() {
			ans += c[i].Len
		}
	}
	return ans
}

// ReferencePositionAfter returns the reference coordinate reached after walking prefix
// from refStart.
func ReferencePositionAfter(refStart int, prefix []Element) int {
	return refStart + ReferenceLength(prefix)
}

// FromSam decodes gonomics cigar runs. A nil input or the lone '*' run gonomics
// uses for an unavailable CIGAR decodes to nil. Elsewhere, '*' is how the gonomics
// bam reader spells op code 9 (B).
func FromSam(c []cigar.Cigar) ([]Element, error) {
	if len(c) == 0 || (len(c) == 1 && c[0].Op == '*') {
		return nil, nil
	}
	ans := make([]Element, len(c))
	var err error
	for i := range c {
		if c[i].Op == '*' {
			ans[i] = Element{Op: Back, Len: c[i].RunLength}
			continue
		}
		ans[i].Op, err = OpFromLetter(rune(c[i].Op))
		if err != nil {
			return nil, err
		}
		ans[i].Len = c[i].RunLength
	}
	return ans, nil
}

// Parse decodes a textual CIGAR such as "10S40M2I8M" (e.g. from an SA tag).
func Parse(s string) ([]Element, error) {
	if s == "*" || s == "" {
		return nil, nil
	}
	var ans []Element
	var n int
	var haveDigits bool
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			haveDigits = true
			continue
		}
		op, err := OpFromLetter(c)
		if err != nil {
			return nil, err
		}
		if !haveDigits {
			return nil, fmt.Errorf("malformed cigar %q: operation %c has no length", s, c)
		}
		ans = append(ans, Element{Op: op, Len: n})
		n = 0
		haveDigits = false
	}
	if haveDigits {
		return nil, fmt.Errorf("malformed cigar %q: trailing length without operation", s)
	}
	return ans, nil
}
