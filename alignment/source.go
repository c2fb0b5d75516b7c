package alignment

import (
	"github.com/vertgenlab/gonomics/sam"
)

// Source provides coordinate-indexed access to alignments.
type Source interface {
	// Fetch returns every record overlapping the half-open region. Records are
	// returned in file order.
	Fetch(region Interval) ([]Record, error)

	// Close releases the underlying file. It must be called exactly once.
	Close() error
}

// BamSource reads from an indexed BAM file. Not safe for concurrent use.
type BamSource struct {
	br     *sam.BamReader
	bai    sam.Bai
	header sam.Header
}

// OpenBam opens filename and its index. If index is empty, filename + ".bai" is used.
func OpenBam(filename, index string) *BamSource {
	if index == "" {
		index = filename + ".bai"
	}
	br, header := sam.OpenBam(filename)
	return &BamSource{
		br:     br,
		bai:    sam.ReadBai(index),
		header: header,
	}
}

// Header returns the header of the underlying file.
func (b *BamSource) Header() sam.Header {
	return b.header
}

// Fetch implements Source. A region with Start < 0 is clamped to 0.
func (b *BamSource) Fetch(region Interval) ([]Record, error) {
	if region.Start < 0 {
		region.Start = 0
	}
	if region.End <= region.Start {
		return nil, nil
	}
	reads := sam.SeekBamRegion(b.br, b.bai, region.Chrom, uint32(region.Start), uint32(region.End))
	ans := make([]Record, 0, len(reads))
	for i := range reads {
		r, err := FromSam(&reads[i])
		if err != nil {
			return nil, err
		}
		if r.Unmapped {
			continue
		}
		ans = append(ans, r)
	}
	return ans, nil
}

// Close implements Source.
func (b *BamSource) Close() error {
	return b.br.Close()
}

// MemSource serves records held in memory. Useful for tests and small inputs.
type MemSource struct {
	Records []Record
}

// Fetch implements Source.
func (m *MemSource) Fetch(region Interval) ([]Record, error) {
	var ans []Record
	for i := range m.Records {
		if m.Records[i].Span().Overlaps(region) {
			ans = append(ans, m.Records[i])
		}
	}
	return ans, nil
}

// Close implements Source.
func (m *MemSource) Close() error {
	return nil
}
