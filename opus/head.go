// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package opus

import (
	"bytes"

	"github.com/akx/opustags/ogg"
	"github.com/akx/opustags/support/byteslicereader"
)

// headMagic opens the identification header.
var headMagic = []byte("OpusHead")

// ValidateHead checks that pkt is an Opus identification header.
//
// Only the magic number is examined. The rest of the packet carries playback
// parameters that a metadata rewrite forwards untouched, so decoding them
// would be wasted strictness.
func ValidateHead(pkt *ogg.Packet) error {
	r := byteslicereader.R{Buffer: pkt.Bytes}
	magic, err := r.Next(len(headMagic))
	if err != nil {
		return ErrCutMagicNumber
	}
	if !bytes.Equal(magic, headMagic) {
		return ErrBadMagicNumber
	}
	return nil
}
