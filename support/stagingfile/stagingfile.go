// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package stagingfile writes a file through a temporary sibling path.
//
// While an F is active, bytes accumulate in a temporary file next to the
// destination. Once finished, F can either be committed or destroyed. On
// commit, it is atomically renamed over its destination; on destroy, it is
// deleted and the destination is left untouched.
package stagingfile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// F manages a staging file.
type F struct {
	// file is the open staging file. It is nil once closed.
	file *os.File

	// path is the path of the staging file. It is emptied once the file has
	// been committed or destroyed.
	path string

	// dest is the final destination path.
	dest string
}

var _ io.Writer = (*F)(nil)

// New creates a staging file for dest in dest's directory, using a
// randomized name.
//
// The staging file must live on the same filesystem as dest for the commit
// rename to be atomic, so no separate temporary directory can be supplied.
func New(dest string) (*F, error) {
	fd, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*")
	if err != nil {
		return nil, errors.Wrap(err, "creating staging file")
	}

	// CreateTemp is conservative about permissions; the committed file should
	// look like any other created file.
	if err := fd.Chmod(0644); err != nil {
		_ = fd.Close()
		_ = os.Remove(fd.Name())
		return nil, errors.Wrap(err, "setting staging file permissions")
	}

	return &F{
		file: fd,
		path: fd.Name(),
		dest: dest,
	}, nil
}

// NewSuffixed creates a staging file for dest at the fixed path dest+suffix.
//
// The path is created exclusively; if something already exists there,
// NewSuffixed fails rather than clobbering it.
func NewSuffixed(dest, suffix string) (*F, error) {
	path := dest + suffix
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "creating staging file %q", path)
	}

	return &F{
		file: fd,
		path: path,
		dest: dest,
	}, nil
}

// Path returns the path of the staging file itself, not the destination.
func (sf *F) Path() string { return sf.path }

// Write implements io.Writer, appending to the staging file.
func (sf *F) Write(p []byte) (int, error) {
	if sf.file == nil {
		return 0, errors.New("staging file is closed")
	}
	return sf.file.Write(p)
}

// Destroy purges the staging file. The destination is not touched.
func (sf *F) Destroy() error {
	if sf.path == "" {
		// There is nothing to destroy.
		return nil
	}

	if sf.file != nil {
		_ = sf.file.Close()
		sf.file = nil
	}

	if err := os.Remove(sf.path); err != nil {
		return err
	}

	sf.path = "" // Destroyed.
	return nil
}

// Commit finalizes the staging file, atomically moving it over the
// destination. Anything already at the destination is replaced.
func (sf *F) Commit() error {
	// If we've already been committed or destroyed, this is an error.
	if sf.path == "" {
		return errors.New("invalid staging file")
	}

	// Make sure the content has hit the disk before it is given the final
	// name.
	if err := sf.file.Sync(); err != nil {
		return errors.Wrap(err, "syncing staging file")
	}
	if err := sf.file.Close(); err != nil {
		return errors.Wrap(err, "closing staging file")
	}
	sf.file = nil

	// Move the final file into place (atomic).
	if err := os.Rename(sf.path, sf.dest); err != nil {
		return errors.Wrapf(err, "moving staging file into place (%q => %q)", sf.path, sf.dest)
	}
	sf.path = "" // Path no longer exists, committed.
	return nil
}
