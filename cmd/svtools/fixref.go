package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/svTools/fixref"
	"github.com/vertgenlab/gonomics/exception"
)

func fixrefUsage(fixFlags *flag.FlagSet) {
	fmt.Print(
		"fixref - replace the REF allele of each record with the sequence of the reference genome\n\n" +
			"Usage:\n" +
			"  svtools fixref -i input.vcf -r reference.fasta > output.vcf\n\n" +
			"Options:\n")
	fixFlags.PrintDefaults()
}

func runFixref(args []string) {
	var err error
	fixFlags := flag.NewFlagSet("fixref", flag.ExitOnError)

	input := fixFlags.String("i", "", "Input VCF file.")
	ref := fixFlags.String("r", "", "Reference FASTA. Must be indexed (.fai).")
	output := fixFlags.String("o", "stdout", "Output VCF file.")
	verbose := fixFlags.Int("verbose", 0, "Level of verbosity in log.")

	err = fixFlags.Parse(args)
	exception.PanicOnErr(err)
	fixFlags.Usage = func() { fixrefUsage(fixFlags) }

	if *input == "" || *ref == "" {
		fixFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -r")
	}

	fixref.FixRef(fixref.Settings{Input: *input, Reference: *ref, Output: *output, Verbose: *verbose})
}
