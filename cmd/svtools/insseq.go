package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/svTools/consensus"
	"github.com/dasnellings/svTools/insertion"
	"github.com/vertgenlab/gonomics/exception"
)

func insseqUsage(insFlags *flag.FlagSet) {
	fmt.Print(
		"insseq - replace the inserted sequence of insertion calls with the consensus of the reads supporting them\n\n" +
			"Usage:\n" +
			"  svtools insseq [options] -i input.vcf -b input.bam > output.vcf\n\n" +
			"Requires muscle (v3) to be installed.\n\n" +
			"Options:\n")
	insFlags.PrintDefaults()
}

func runInsseq(args []string) {
	var err error
	insFlags := flag.NewFlagSet("insseq", flag.ExitOnError)

	input := insFlags.String("i", "", "Input VCF file with insertion calls (INFO SVTYPE=INS and SVLEN).")
	bam := insFlags.String("b", "", "BAM file with reads supporting the calls. Must be indexed (.bai).")
	bai := insFlags.String("bai", "", "BAM index. Defaults to the BAM file name + .bai")
	output := insFlags.String("o", "stdout", "Output VCF file.")
	window := insFlags.Int("window", insertion.DefaultWindow, "Reads with an insertion within this many bases of the call contribute to the consensus.")
	minLen := insFlags.Int("minInsertionLen", insertion.DefaultMinInsertionLen, "Only consider insertions in reads longer than this.")
	threads := insFlags.Int("threads", 1, "Number of concurrent muscle processes.")
	musclePath := insFlags.String("muscle", "muscle", "Path to the muscle executable.")
	maxIters := insFlags.Int("maxiters", 2, "Maximum muscle refinement iterations.")
	timeout := insFlags.Duration("timeout", 0, "Abandon the consensus for a call if muscle runs longer than this (e.g. 30s). 0 for no limit.")
	verbose := insFlags.Int("verbose", 0, "Level of verbosity in log.")
	prof := addProfileFlags(insFlags)

	err = insFlags.Parse(args)
	exception.PanicOnErr(err)
	insFlags.Usage = func() { insseqUsage(insFlags) }

	if *input == "" || *bam == "" {
		insFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -b")
	}
	if *threads < 1 {
		errExit("ERROR: threads must be >= 1.")
	}

	muscle := consensus.Muscle{Path: *musclePath, MaxIters: *maxIters, Timeout: *timeout}
	if err = muscle.Check(); err != nil {
		errExit("ERROR: " + err.Error())
	}
	defer prof.start()()

	insertion.Improve(insertion.Settings{
		Input:           *input,
		Bam:             *bam,
		BamIndex:        *bai,
		Output:          *output,
		Window:          *window,
		MinInsertionLen: *minLen,
		Threads:         *threads,
		Aligner:         muscle,
		Verbose:         *verbose,
	})
}
