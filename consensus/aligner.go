package consensus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Entry is one sequence submitted for multiple alignment.
type Entry struct {
	ID  string
	Seq string
}

// Alignment is a column alignment. All Rows have equal length and Rows[i]
// belongs to IDs[i].
type Alignment struct {
	IDs  []string
	Rows []string
}

// Len is the number of columns in the alignment.
func (a Alignment) Len() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0])
}

// SequenceAligner performs a multiple sequence alignment.
type SequenceAligner interface {
	Align(ctx context.Context, seqs []Entry) (Alignment, error)
}

// ErrAlignerInvocation is matched by every *AlignerError.
var ErrAlignerInvocation = errors.New("aligner invocation failed")

// AlignerError reports a failed or unparsable aligner run.
type AlignerError struct {
	Err    error
	Stderr string
}

func (e *AlignerError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", ErrAlignerInvocation, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s: %v", ErrAlignerInvocation, e.Err)
}

func (e *AlignerError) Unwrap() error {
	return e.Err
}

func (e *AlignerError) Is(target error) bool {
	return target == ErrAlignerInvocation
}

// Muscle runs the MUSCLE (v3) executable with FASTA on stdin and strict clustal
// output on stdout. The zero value runs "muscle -clwstrict -maxiters 2".
type Muscle struct {
	// Path to the executable. Defaults to "muscle" on $PATH.
	Path string

	// MaxIters caps refinement iterations. An approximate alignment is enough
	// for a consensus so the default is 2.
	MaxIters int

	// Timeout bounds each invocation when > 0.
	Timeout time.Duration
}

const defaultMaxIters = 2

func (m Muscle) path() string {
	if m.Path == "" {
		return "muscle"
	}
	return m.Path
}

func (m Muscle) command(ctx context.Context) *exec.Cmd {
	iters := m.MaxIters
	if iters <= 0 {
		iters = defaultMaxIters
	}
	return exec.CommandContext(ctx, m.path(), "-clwstrict", "-maxiters", strconv.Itoa(iters))
}

// Align implements SequenceAligner.
func (m Muscle) Align(ctx context.Context, seqs []Entry) (Alignment, error) {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := m.command(ctx)
	cmd.Stdin = strings.NewReader(toFasta(seqs))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return Alignment{}, &AlignerError{Err: err, Stderr: stderr.String()}
	}

	aln, err := ParseClustal(&stdout)
	if err != nil {
		return Alignment{}, &AlignerError{Err: err, Stderr: stderr.String()}
	}
	return aln, nil
}

// Check returns an error if the executable cannot be found.
func (m Muscle) Check() error {
	_, err := exec.LookPath(m.path())
	if err != nil {
		return fmt.Errorf("could not find muscle executable: %w", err)
	}
	return nil
}

func toFasta(seqs []Entry) string {
	s := new(strings.Builder)
	for i := range seqs {
		fmt.Fprintf(s, ">%s\n%s\n", seqs[i].ID, seqs[i].Seq)
	}
	return s.String()
}
