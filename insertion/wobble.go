package insertion

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/dasnellings/svTools/alignment"
	"github.com/dasnellings/svTools/cigarops"
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWobbleWindow = 1000
	maxPlottedDistance  = 5000
	histogramBins       = 50
)

// WobbleSettings for Wobble.
type WobbleSettings struct {
	Input           string // VCF
	Bam             string
	BamIndex        string
	Output          string // per read distances, tsv
	Plot            string // histogram image, format from the extension. Empty to skip.
	Window          int
	MinInsertionLen int
	Verbose         int
}

// Distance is the offset of one read's insertion from the called breakpoint.
type Distance struct {
	Call   string
	ReadID string
	Offset float64 // call midpoint - insertion position
}

// Distances reports, for each read overlapping [midpoint-window, midpoint+window),
// how far its first insertion longer than minInsertionLen lies from the call midpoint.
// Reads without such an insertion are not reported.
func Distances(c Candidate, records []alignment.Record, minInsertionLen int) []Distance {
	mid := float64(c.Start+c.End) / 2
	var ans []Distance
	for i := range records {
		cigarops.Walk(records[i].Start, records[i].Cigar, func(w cigarops.Walker, e cigarops.Element) bool {
			if e.Op != cigarops.Insertion || e.Len <= minInsertionLen {
				return true
			}
			ans = append(ans, Distance{Call: c.Name, ReadID: records[i].Name, Offset: mid - float64(w.Ref)})
			return false
		})
	}
	return ans
}

// Summary describes the distribution of insertion offsets.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
}

// Summarize computes summary statistics of d. Summary is zero valued for empty input.
func Summarize(d []Distance) Summary {
	if len(d) == 0 {
		return Summary{}
	}
	x := offsets(d)
	slices.Sort(x)
	ans := Summary{
		N:      len(x),
		Mean:   stat.Mean(x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
	}
	if len(x) > 1 {
		ans.StdDev = stat.StdDev(x, nil)
	}
	return ans
}

func (s Summary) String() string {
	return fmt.Sprintf("Insertions:\t%d\nMean offset:\t%.2f\nStdDev:\t%.2f\nMedian offset:\t%.2f", s.N, s.Mean, s.StdDev, s.Median)
}

func offsets(d []Distance) []float64 {
	ans := make([]float64, len(d))
	for i := range d {
		ans[i] = d[i].Offset
	}
	return ans
}

// plottable drops offsets further than maxPlottedDistance from the call.
func plottable(d []Distance) []float64 {
	var ans []float64
	for i := range d {
		if math.Abs(d[i].Offset) <= maxPlottedDistance {
			ans = append(ans, d[i].Offset)
		}
	}
	return ans
}

// Wobble measures how far individual reads place an insertion from where it
// was called. Offsets are written to s.Output, summarized on stderr and
// optionally plotted as a histogram.
func Wobble(s WobbleSettings) {
	if s.Window <= 0 {
		s.Window = DefaultWobbleWindow
	}
	if s.MinInsertionLen <= 0 {
		s.MinInsertionLen = DefaultMinInsertionLen
	}

	records, _ := vcf.GoReadToChan(s.Input)
	src := alignment.OpenBam(s.Bam, s.BamIndex)
	defer cleanup(src)

	var all []Distance
	var c Candidate
	var recs []alignment.Record
	var err error
	for v := range records {
		c, err = CandidateFromVcf(v, 0)
		if errors.Is(err, errNotInsertion) {
			continue
		}
		if err != nil {
			log.Printf("WARNING: skipping %s: %s\n", variantName(v), err)
			continue
		}
		c.Name = variantName(v)
		mid := c.Midpoint()
		recs, err = src.Fetch(alignment.Interval{Chrom: c.Chrom, Start: mid - s.Window, End: mid + s.Window})
		exception.PanicOnErr(err)
		d := Distances(c, recs, s.MinInsertionLen)
		if s.Verbose > 0 {
			log.Printf("%s: %d reads, %d with an insertion\n", c.Name, len(recs), len(d))
		}
		all = append(all, d...)
	}

	out := fileio.EasyCreate(s.Output)
	writeDistances(out, all)
	err = out.Close()
	exception.PanicOnErr(err)

	summary := Summarize(all)
	log.Printf("\n%s\n", summary)
	if hist := asciiHistogram(plottable(all), histogramBins); hist != "" {
		log.Printf("Distance between call and individual insertions\n%s\n", hist)
	}

	if s.Plot != "" {
		err = savePlot(s.Plot, plottable(all))
		exception.PanicOnErr(err)
	}
}

func writeDistances(w io.Writer, d []Distance) {
	_, err := fmt.Fprintln(w, "call\tread\tdistance")
	exception.PanicOnErr(err)
	for i := range d {
		_, err = fmt.Fprintf(w, "%s\t%s\t%g\n", d[i].Call, d[i].ReadID, d[i].Offset)
		exception.PanicOnErr(err)
	}
}

// binCounts splits [-maxPlottedDistance, maxPlottedDistance] into bins and counts x in each.
func binCounts(x []float64, bins int) []float64 {
	ans := make([]float64, bins)
	width := 2 * maxPlottedDistance / float64(bins)
	var b int
	for i := range x {
		b = int((x[i] + maxPlottedDistance) / width)
		if b == bins {
			b--
		}
		if b < 0 || b >= bins {
			continue
		}
		ans[b]++
	}
	return ans
}

func asciiHistogram(x []float64, bins int) string {
	if len(x) == 0 {
		return ""
	}
	return asciigraph.Plot(binCounts(x, bins), asciigraph.Height(10), asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%d bins over [-%d, %d]", bins, maxPlottedDistance, maxPlottedDistance)))
}

func savePlot(filename string, x []float64) error {
	p := plot.New()
	p.Title.Text = "Distance between call and individual insertions"
	p.X.Label.Text = "Distance from call"
	p.Y.Label.Text = "Reads"
	p.X.Min = -maxPlottedDistance
	p.X.Max = maxPlottedDistance

	if len(x) > 0 {
		h, err := plotter.NewHist(plotter.Values(x), histogramBins)
		if err != nil {
			return err
		}
		p.Add(h)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}
