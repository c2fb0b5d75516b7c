package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/svTools/purge"
	"github.com/vertgenlab/gonomics/exception"
)

func purge2dUsage(purgeFlags *flag.FlagSet) {
	fmt.Print(
		"purge2d - remove supplementary alignments that are reverse complement copies of their primary alignment\n\n" +
			"Usage:\n" +
			"  svtools purge2d [options] -i input.bam -o output.bam\n\n" +
			"Options:\n")
	purgeFlags.PrintDefaults()
}

func runPurge2d(args []string) {
	var err error
	purgeFlags := flag.NewFlagSet("purge2d", flag.ExitOnError)

	input := purgeFlags.String("i", "", "Input SAM or BAM file.")
	output := purgeFlags.String("o", "stdout", "Output file. Written as BAM if the name ends in .bam, SAM otherwise.")
	candidates := purgeFlags.String("candidates", "", "Write all potential 2D artefacts to this file before proximity filtering (e.g. 2D-candidates.bam).")
	distance := purgeFlags.Int("distance", purge.DefaultDistance, "Potential artefacts starting less than this many bases from another potential artefact are kept.")
	verbose := purgeFlags.Int("verbose", 0, "Level of verbosity in log.")
	prof := addProfileFlags(purgeFlags)

	err = purgeFlags.Parse(args)
	exception.PanicOnErr(err)
	purgeFlags.Usage = func() { purge2dUsage(purgeFlags) }

	if *input == "" {
		purgeFlags.Usage()
		errExit("\nERROR: must have input for -i")
	}
	if *distance < 1 {
		errExit("ERROR: -distance must be >= 1")
	}
	defer prof.start()()

	purge.Purge(purge.Settings{
		Input:            *input,
		Output:           *output,
		CandidatesOutput: *candidates,
		Distance:         *distance,
		Verbose:          *verbose,
	})
}
