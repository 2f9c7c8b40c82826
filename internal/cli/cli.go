// Package cli handles command line interface logic for the emulator front
// end. The machine core has no CLI surface; everything here stays outside
// of it.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/aspenemu/internal/isa"
)

// Options contains the program options.
type Options struct {
	Input   string // program binary to execute
	Storage string // optional initial storage space image

	Revision string
	Debug    bool
	Quiet    bool
}

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (Options, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts Options
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if _, err := isa.SetFor(isa.Revision(opts.Revision)); err != nil {
		return opts, fmt.Errorf("%w, valid options: %s, %s",
			err, isa.RevisionV1, isa.RevisionGraft)
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: aspenemu [options] <file to execute>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to execute, please pass the file to execute as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Revision, "revision", string(isa.RevisionGraft), "ISA revision of the program binary (v1/graft)")
	flags.StringVar(&opts.Storage, "storage", "", "name of a file to load as the initial storage space image")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
