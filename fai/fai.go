// Package fai reads samtools FASTA index (.fai) files.
package fai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Index lists the sequences of an indexed FASTA in file order.
type Index struct {
	contigs []Contig
	nameMap map[string]int
}

// Contig is one line of a fai file.
type Contig struct {
	Name         string
	Len          int // bases
	Offset       int // byte offset of the first base
	BasesPerLine int
	BytesPerLine int // including the newline
}

func (c Contig) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", c.Name, c.Len, c.Offset, c.BasesPerLine, c.BytesPerLine)
}

func (idx Index) String() string {
	answer := new(strings.Builder)
	for i := range idx.contigs {
		answer.WriteString(idx.contigs[i].String())
		answer.WriteByte('\n')
	}
	return answer.String()
}

// Has reports whether chr is present in the index.
func (idx Index) Has(chr string) bool {
	_, found := idx.nameMap[chr]
	return found
}

// Size returns the length of chr, or -1 if chr is not in the index.
func (idx Index) Size(chr string) int {
	i, found := idx.nameMap[chr]
	if !found {
		return -1
	}
	return idx.contigs[i].Len
}

// Contigs returns the indexed sequences in file order.
func (idx Index) Contigs() []Contig {
	return idx.contigs
}

// Read parses a fai index file.
func Read(filename string) (Index, error) {
	file := fileio.EasyOpen(filename)
	defer func() {
		err := file.Close()
		exception.PanicOnErr(err)
	}()

	answer := Index{nameMap: make(map[string]int)}
	var curr Contig
	var col []string
	var lineNum int
	var err error
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			return answer, fmt.Errorf("malformed index file %s: line %d has %d columns, expected 5", filename, lineNum, len(col))
		}
		curr.Name = col[0]
		if curr.Len, err = strconv.Atoi(col[1]); err != nil {
			return answer, fmt.Errorf("malformed index file %s: line %d: %w", filename, lineNum, err)
		}
		if curr.Offset, err = strconv.Atoi(col[2]); err != nil {
			return answer, fmt.Errorf("malformed index file %s: line %d: %w", filename, lineNum, err)
		}
		if curr.BasesPerLine, err = strconv.Atoi(col[3]); err != nil {
			return answer, fmt.Errorf("malformed index file %s: line %d: %w", filename, lineNum, err)
		}
		if curr.BytesPerLine, err = strconv.Atoi(col[4]); err != nil {
			return answer, fmt.Errorf("malformed index file %s: line %d: %w", filename, lineNum, err)
		}
		answer.nameMap[curr.Name] = len(answer.contigs)
		answer.contigs = append(answer.contigs, curr)
	}
	return answer, nil
}

// VcfHeader returns a ##contig header line for each sequence in the index.
func (idx Index) VcfHeader() []string {
	ans := make([]string, len(idx.contigs))
	for i := range idx.contigs {
		ans[i] = fmt.Sprintf("##contig=<ID=%s,length=%d>", idx.contigs[i].Name, idx.contigs[i].Len)
	}
	return ans
}
