package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/svTools/insertion"
	"github.com/vertgenlab/gonomics/exception"
)

func wobbleUsage(wobbleFlags *flag.FlagSet) {
	fmt.Print(
		"wobble - measure the distance between insertion calls and the insertions found in individual reads\n\n" +
			"Usage:\n" +
			"  svtools wobble [options] -i input.vcf -b input.bam -plot insertion_distances.png > distances.tsv\n\n" +
			"Options:\n")
	wobbleFlags.PrintDefaults()
}

func runWobble(args []string) {
	var err error
	wobbleFlags := flag.NewFlagSet("wobble", flag.ExitOnError)

	input := wobbleFlags.String("i", "", "Input VCF file with insertion calls.")
	bam := wobbleFlags.String("b", "", "BAM file. Must be indexed (.bai).")
	bai := wobbleFlags.String("bai", "", "BAM index. Defaults to the BAM file name + .bai")
	output := wobbleFlags.String("o", "stdout", "Output tsv with the distance for each read.")
	plotFile := wobbleFlags.String("plot", "", "Save a histogram of distances. Format is taken from the extension (png, pdf, svg).")
	window := wobbleFlags.Int("window", insertion.DefaultWobbleWindow, "Consider reads within this many bases of the call.")
	minLen := wobbleFlags.Int("minInsertionLen", insertion.DefaultMinInsertionLen, "Only consider insertions in reads longer than this.")
	verbose := wobbleFlags.Int("verbose", 0, "Level of verbosity in log.")

	err = wobbleFlags.Parse(args)
	exception.PanicOnErr(err)
	wobbleFlags.Usage = func() { wobbleUsage(wobbleFlags) }

	if *input == "" || *bam == "" {
		wobbleFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -b")
	}

	insertion.Wobble(insertion.WobbleSettings{
		Input:           *input,
		Bam:             *bam,
		BamIndex:        *bai,
		Output:          *output,
		Plot:            *plotFile,
		Window:          *window,
		MinInsertionLen: *minLen,
		Verbose:         *verbose,
	})
}
