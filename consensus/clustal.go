package consensus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseClustal reads a clustal formatted alignment. Rows are returned in the
// order each identifier first appears. Conservation lines (starting with
// whitespace) and the optional trailing residue counts are ignored.
func ParseClustal(r io.Reader) (Alignment, error) {
	var ans Alignment
	var words []string
	var idx int
	var found, sawHeader bool
	rows := make(map[string]int)
	builders := make([]*strings.Builder, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !sawHeader {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !strings.HasPrefix(line, "CLUSTAL") && !strings.HasPrefix(line, "MUSCLE") {
				return ans, fmt.Errorf("malformed clustal alignment: unexpected header %q", line)
			}
			sawHeader = true
			continue
		}
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		words = strings.Fields(line)
		if len(words) < 2 {
			return ans, fmt.Errorf("malformed clustal alignment: could not parse line %q", line)
		}
		idx, found = rows[words[0]]
		if !found {
			idx = len(builders)
			rows[words[0]] = idx
			ans.IDs = append(ans.IDs, words[0])
			builders = append(builders, new(strings.Builder))
		}
		builders[idx].WriteString(words[1])
	}
	if err := scanner.Err(); err != nil {
		return ans, err
	}
	if !sawHeader {
		return ans, errors.New("malformed clustal alignment: empty input")
	}
	if len(builders) == 0 {
		return ans, errors.New("malformed clustal alignment: no sequences")
	}

	ans.Rows = make([]string, len(builders))
	for i := range builders {
		ans.Rows[i] = builders[i].String()
		if len(ans.Rows[i]) != len(ans.Rows[0]) {
			return ans, fmt.Errorf("malformed clustal alignment: %s has %d columns, expected %d", ans.IDs[i], len(ans.Rows[i]), len(ans.Rows[0]))
		}
	}
	return ans, nil
}
