// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package opus

import (
	"github.com/pkg/errors"
)

var (
	// ErrBadMagicNumber is returned when a header packet opens with the
	// wrong magic number.
	ErrBadMagicNumber = errors.New("opus: wrong magic number")

	// ErrCutMagicNumber is returned when a header packet is too short to
	// hold its magic number.
	ErrCutMagicNumber = errors.New("opus: magic number cut short")

	// ErrCutVendorLength is returned when the vendor string length field is
	// incomplete.
	ErrCutVendorLength = errors.New("opus: vendor string length cut short")

	// ErrCutVendorData is returned when the vendor string is shorter than
	// its declared length.
	ErrCutVendorData = errors.New("opus: vendor string cut short")

	// ErrCutCommentCount is returned when the comment count field is
	// incomplete.
	ErrCutCommentCount = errors.New("opus: comment count cut short")

	// ErrCutCommentLength is returned when a comment length field is
	// incomplete.
	ErrCutCommentLength = errors.New("opus: comment length cut short")

	// ErrCutCommentData is returned when a comment is shorter than its
	// declared length.
	ErrCutCommentData = errors.New("opus: comment data cut short")
)
