package purge

import (
	"strings"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// alnWriter writes alignments as BAM or SAM text.
type alnWriter struct {
	file *fileio.EasyWriter
	bw   *sam.BamWriter
}

// newWriter writes BAM when filename ends in .bam and SAM text otherwise.
func newWriter(filename string, header sam.Header) *alnWriter {
	w := &alnWriter{file: fileio.EasyCreate(filename)}
	if strings.HasSuffix(filename, ".bam") {
		w.bw = sam.NewBamWriter(w.file, header)
	} else {
		sam.WriteHeaderToFileHandle(w.file, header)
	}
	return w
}

func (w *alnWriter) Write(s sam.Sam) {
	if w.bw != nil {
		sam.WriteToBamFileHandle(w.bw, s, 0)
		return
	}
	sam.WriteToFileHandle(w.file, s)
}

func (w *alnWriter) Close() error {
	if w.bw != nil {
		err := w.bw.Close()
		exception.PanicOnErr(err)
	}
	return w.file.Close()
}
