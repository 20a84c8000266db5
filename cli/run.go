// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/akx/opustags/ogg"
	"github.com/akx/opustags/support/logging"
	"github.com/akx/opustags/support/stagingfile"
)

// App binds an invocation to its standard streams.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger, if not nil, receives diagnostics.
	Logger logging.L
}

// Run executes one parsed invocation.
func (a *App) Run(opt *Options) error {
	if opt.PrintHelp {
		_, err := io.WriteString(a.Stdout, usage)
		return err
	}

	if opt.SetAll && opt.SetComments == nil {
		comments, err := ReadComments(a.Stdin, a.Stderr)
		if err != nil {
			return err
		}
		opt.SetComments = comments
	}

	var input io.Reader
	if opt.PathIn == "-" {
		input = a.Stdin
	} else {
		f, err := os.Open(opt.PathIn)
		if err != nil {
			return errors.Wrapf(err, "opening %q", opt.PathIn)
		}
		defer f.Close()
		input = f
	}

	reader := ogg.NewReader(input)
	reader.Logger = a.Logger

	switch {
	case opt.InPlace != "" || (opt.PathOut != "" && opt.PathOut != "-"):
		return a.processStaged(reader, opt)
	case opt.PathOut == "-":
		return Process(reader, ogg.NewWriter(a.Stdout), a.Stdout, opt)
	default:
		return Process(reader, nil, a.Stdout, opt)
	}
}

// processStaged writes the output stream through a staging file that only
// replaces the destination when the whole stream came through.
func (a *App) processStaged(reader *ogg.Reader, opt *Options) error {
	var (
		staged *stagingfile.F
		err    error
	)
	if opt.InPlace != "" {
		// In-place mode stages at a visible, deterministic path. A stale
		// staging file is only ever replaced on request.
		temp := opt.PathIn + opt.InPlace
		if pathExists(temp) {
			if !opt.Overwrite {
				return errors.Errorf("%q already exists (use -y to overwrite)", temp)
			}
			if err := os.Remove(temp); err != nil {
				return errors.Wrapf(err, "removing stale %q", temp)
			}
		}
		staged, err = stagingfile.NewSuffixed(opt.PathIn, opt.InPlace)
	} else {
		if !opt.Overwrite && pathExists(opt.PathOut) {
			return errors.Errorf("%q already exists (use -y to overwrite)", opt.PathOut)
		}
		staged, err = stagingfile.New(opt.PathOut)
	}
	if err != nil {
		return err
	}

	logging.Must(a.Logger).Debugf("Staging output in %s.", staged.Path())

	if err := Process(reader, ogg.NewWriter(staged), a.Stdout, opt); err != nil {
		if derr := staged.Destroy(); derr != nil {
			logging.Must(a.Logger).Warnf("Failed to remove staging file: %s", derr)
		}
		return err
	}
	if err := staged.Commit(); err != nil {
		if derr := staged.Destroy(); derr != nil {
			logging.Must(a.Logger).Warnf("Failed to remove staging file: %s", derr)
		}
		return err
	}
	return nil
}

// pathExists reports whether anything lives at path.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
