// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/akx/opustags/support/logging"
)

// Main is the entry point of the opustags command.
func Main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opt, err := ParseOptions(args)
	if err != nil {
		return err
	}

	logger := logging.Nop
	if opt.Verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "initializing logging")
		}
		defer func() { _ = zl.Sync() }()
		logger = zl.Sugar()
	}

	app := App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
	return app.Run(opt)
}
