// Package consensus reduces a set of noisy reads of the same sequence to a
// single consensus by multiple alignment and per-column majority vote.
package consensus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Defaults for Build.
const (
	DefaultThreshold = 0.7
	Ambiguous        = 'N'
	minSequences     = 2
)

// ErrInsufficientEvidence is returned by Build when fewer than two sequences are available.
var ErrInsufficientEvidence = errors.New("insufficient evidence for consensus")

// Majority collapses an alignment into a consensus with one character per column.
// Gaps ('-' and '.') are not counted. A column yields its most common base when that
// base is the unique maximum and accounts for at least threshold of the counted
// bases. Otherwise, or when requireMultiple is set and only one base was counted,
// the column yields ambiguous.
func Majority(aln Alignment, threshold float64, ambiguous byte, requireMultiple bool) string {
	ans := make([]byte, aln.Len())
	var counts [256]int
	var total, maxCount, numMax int
	var c, best byte
	for col := range ans {
		counts = [256]int{}
		total = 0
		for row := range aln.Rows {
			if col >= len(aln.Rows[row]) {
				continue
			}
			c = upper(aln.Rows[row][col])
			if c == '-' || c == '.' {
				continue
			}
			counts[c]++
			total++
		}

		maxCount, numMax = 0, 0
		for i := range counts {
			switch {
			case counts[i] > maxCount:
				maxCount = counts[i]
				numMax = 1
				best = byte(i)
			case counts[i] == maxCount && maxCount > 0:
				numMax++
			}
		}

		switch {
		case requireMultiple && total == 1:
			ans[col] = ambiguous
		case numMax == 1 && float64(maxCount)/float64(total) >= threshold:
			ans[col] = best
		default:
			ans[col] = ambiguous
		}
	}
	return string(ans)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Build aligns seqs with aligner and returns their majority consensus.
// Fewer than two sequences returns ErrInsufficientEvidence without calling the aligner.
// Failures of the aligner are returned as *AlignerError.
func Build(ctx context.Context, aligner SequenceAligner, seqs []string) (string, error) {
	if len(seqs) < minSequences {
		return "", ErrInsufficientEvidence
	}
	entries := make([]Entry, len(seqs))
	for i := range seqs {
		entries[i] = Entry{ID: "ins" + strconv.Itoa(i), Seq: seqs[i]}
	}

	aln, err := aligner.Align(ctx, entries)
	if err != nil {
		var alnErr *AlignerError
		if !errors.As(err, &alnErr) {
			err = &AlignerError{Err: err}
		}
		return "", err
	}
	if len(aln.Rows) != len(seqs) {
		return "", &AlignerError{Err: fmt.Errorf("expected %d aligned sequences, found %d", len(seqs), len(aln.Rows))}
	}
	return Majority(aln, DefaultThreshold, Ambiguous, true), nil
}
