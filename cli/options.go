// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// usage is printed on --help.
const usage = `Usage: opustags --help
       opustags [OPTIONS] FILE
       opustags OPTIONS FILE -o FILE

Options:
  -h, --help                print this help
  -o, --output FILE         specify the output file
  -i, --in-place[=SUFFIX]   overwrite the input file (default suffix .otmp)
  -y, --overwrite           overwrite the output file if it already exists
  -d, --delete FIELD        delete all the fields of a specified type
  -a, --add FIELD=VALUE     add a field
  -s, --set FIELD=VALUE     delete then add a field
  -D, --delete-all          delete all the fields
  -S, --set-all             read the fields from standard input
      --verbose             enable diagnostic logging
`

// Options is one decoded opustags invocation.
type Options struct {
	// PathIn is the input file path. "-" reads from standard input.
	PathIn string

	// PathOut is the output file path. "-" writes to standard output, and
	// empty means print the comments instead of writing a stream.
	PathOut string

	// InPlace, when not empty, edits PathIn in place: output is staged at
	// PathIn+InPlace and replaces PathIn on success.
	InPlace string

	// ToAdd lists comments to append, in NAME=VALUE form.
	ToAdd []string

	// ToDelete lists field names to remove.
	ToDelete []string

	// SetComments replaces the whole comment list when SetAll is set. If it
	// is nil, the replacement list is read from standard input at run time.
	SetComments []string

	// DeleteAll removes every existing comment before additions.
	DeleteAll bool

	// SetAll replaces the comment list with SetComments.
	SetAll bool

	// Overwrite allows clobbering a pre-existing output file.
	Overwrite bool

	// PrintHelp prints the usage text and does nothing else.
	PrintHelp bool

	// Verbose enables diagnostic logging.
	Verbose bool
}

// ParseOptions decodes the command line, program name excluded.
//
// Everything that can be rejected without looking at the input file is
// rejected here.
func ParseOptions(args []string) (*Options, error) {
	var (
		opt Options
		set []string
	)

	fs := pflag.NewFlagSet("opustags", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVarP(&opt.PrintHelp, "help", "h", false, "")
	fs.StringVarP(&opt.PathOut, "output", "o", "", "")
	fs.StringVarP(&opt.InPlace, "in-place", "i", "", "")
	fs.Lookup("in-place").NoOptDefVal = ".otmp"
	fs.BoolVarP(&opt.Overwrite, "overwrite", "y", false, "")
	fs.StringArrayVarP(&opt.ToDelete, "delete", "d", nil, "")
	fs.StringArrayVarP(&opt.ToAdd, "add", "a", nil, "")
	fs.StringArrayVarP(&set, "set", "s", nil, "")
	fs.BoolVarP(&opt.DeleteAll, "delete-all", "D", false, "")
	fs.BoolVarP(&opt.SetAll, "set-all", "S", false, "")
	fs.BoolVar(&opt.Verbose, "verbose", false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opt.PrintHelp {
		return &opt, nil
	}

	switch positional := fs.Args(); len(positional) {
	case 0:
		return nil, errors.New("input file is missing")
	case 1:
		opt.PathIn = positional[0]
	default:
		return nil, errors.Errorf("unexpected extra argument %q", positional[1])
	}
	if opt.PathIn == "" {
		return nil, errors.New("input file path cannot be empty")
	}
	if fs.Changed("output") && opt.PathOut == "" {
		return nil, errors.New("output file path cannot be empty")
	}
	if fs.Changed("in-place") && opt.InPlace == "" {
		return nil, errors.New("in-place suffix cannot be empty")
	}

	if opt.InPlace != "" {
		if opt.PathOut != "" {
			return nil, errors.New("cannot combine --in-place and --output")
		}
		if opt.PathIn == "-" {
			return nil, errors.New("cannot edit standard input in place")
		}
	}
	if opt.SetAll && opt.PathIn == "-" {
		return nil, errors.New("cannot read both the input stream and the comments from standard input")
	}

	for _, comment := range opt.ToAdd {
		if !strings.ContainsRune(comment, '=') {
			return nil, errors.Errorf("invalid comment %q: expected NAME=VALUE", comment)
		}
	}
	for _, name := range opt.ToDelete {
		if strings.ContainsRune(name, '=') {
			return nil, errors.Errorf("invalid field name %q: must not contain '='", name)
		}
	}

	// --set is sugar for a delete followed by an add.
	for _, comment := range set {
		eq := strings.IndexByte(comment, '=')
		if eq < 0 {
			return nil, errors.Errorf("invalid comment %q: expected NAME=VALUE", comment)
		}
		opt.ToDelete = append(opt.ToDelete, comment[:eq])
		opt.ToAdd = append(opt.ToAdd, comment)
	}

	return &opt, nil
}
