// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidPage is returned when page data is structurally invalid,
	// such as a missing capture pattern or an unsupported version.
	ErrInvalidPage = errors.New("ogg: invalid page")

	// ErrBadCRC is returned when a page's checksum does not match its
	// content.
	ErrBadCRC = errors.New("ogg: page checksum mismatch")

	// ErrUnexpectedEOS is returned when the data ends in the middle of a
	// page.
	ErrUnexpectedEOS = errors.New("ogg: unexpected end of stream")

	// ErrEndOfPage is returned by Reader.ReadPacket when the current page
	// has no more packets to offer. The caller should read the next page.
	ErrEndOfPage = errors.New("ogg: end of page")

	// ErrStreamNotReady is returned when packets are requested or
	// submitted before a stream has been established.
	ErrStreamNotReady = errors.New("ogg: stream not ready")

	// ErrUnflushedPackets is returned by Writer.WritePage when packets
	// submitted with WritePacket have not been flushed yet. Mixing the two
	// would interleave their bytes.
	ErrUnflushedPackets = errors.New("ogg: unflushed packets pending")

	// errNeedMore is an internal signal that the buffer does not yet hold
	// a complete page.
	errNeedMore = errors.New("ogg: incomplete page data")
)
