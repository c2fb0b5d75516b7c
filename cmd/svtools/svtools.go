package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/profile"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
// New subcommands can be added to svtools by adding a new entry to this array.
var SubCommands = []*subcommand{
	{"purge2d", runPurge2d, "remove accidental 2D supplementary alignments from a bam"},
	{"insseq", runInsseq, "refine inserted sequence of insertion calls from supporting reads"},
	{"wobble", runWobble, "measure distance between insertion calls and insertions in reads"},
	{"fixref", runFixref, "replace REF alleles with the reference genome sequence"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: svtools (tools for refining structural variants from aligned reads)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tsvtools <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	command := commandMap()[flag.Arg(0)]
	if command == nil {
		flag.Usage()
		return
	}
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// profileFlags registers -cpuprofile and -memprofile on f.
type profileFlags struct {
	cpu *bool
	mem *bool
}

func addProfileFlags(f *flag.FlagSet) profileFlags {
	return profileFlags{
		cpu: f.Bool("cpuprofile", false, "Write a cpu profile to the working directory."),
		mem: f.Bool("memprofile", false, "Write a memory profile to the working directory."),
	}
}

// start begins profiling if requested. The returned func must be deferred.
func (p profileFlags) start() func() {
	if *p.mem && *p.cpu {
		log.Fatal("ERROR: -memprofile and -cpuprofile are mutually exclusive.")
	}
	switch {
	case *p.mem:
		return profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop
	case *p.cpu:
		return profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop
	default:
		return func() {}
	}
}
