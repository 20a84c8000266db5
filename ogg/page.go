// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

import (
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/akx/opustags/support/byteslicereader"
	"github.com/akx/opustags/support/fmtutil"
)

// capturePattern opens every page.
const capturePattern = "OggS"

// Header type flag bits.
const (
	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04
)

const (
	// headerSize is the size of the fixed page header, before the lacing
	// table.
	headerSize = 27

	// maxSegments is the maximum number of lacing values on one page.
	maxSegments = 255

	// maxPageSize is the largest possible page: fixed header, full lacing
	// table, and 255 segments of 255 bytes each.
	maxPageSize = headerSize + maxSegments + maxSegments*255

	// crcOffset is the byte offset of the checksum field within a page.
	crcOffset = 22
)

// pageHeader is the fixed-size page prefix. All multi-byte fields are
// little-endian.
type pageHeader struct {
	CapturePattern  [4]byte
	Version         uint8
	HeaderType      uint8
	GranulePosition int64  `struc:",little"`
	Serial          uint32 `struc:",little"`
	Sequence        uint32 `struc:",little"`
	CRC             uint32 `struc:",little"`
	NumSegments     uint8
}

// Page is a single decoded page.
//
// Its byte slices alias the Reader's internal buffer. They are valid until
// the next ReadPage call, after which the memory may be reused.
type Page struct {
	// Version is the stream structure version, always 0.
	Version byte

	// HeaderType holds the continued/BOS/EOS flag bits.
	HeaderType byte

	// GranulePosition is the codec-defined position marker, -1 when no
	// packet completes on this page.
	GranulePosition int64

	// Serial identifies the logical bitstream this page belongs to.
	Serial uint32

	// Sequence is the page's position within its logical bitstream.
	Sequence uint32

	// Segments is the lacing table.
	Segments []byte

	// Payload is the page body described by the lacing table.
	Payload []byte

	// Raw is the complete encoded page, checksum included. Writing it back
	// out reproduces the input bytes exactly.
	Raw []byte
}

// Continued reports whether the first segment continues a packet from the
// previous page.
func (p *Page) Continued() bool { return p.HeaderType&flagContinued != 0 }

// BOS reports whether this is the first page of its logical bitstream.
func (p *Page) BOS() bool { return p.HeaderType&flagBOS != 0 }

// EOS reports whether this is the last page of its logical bitstream.
func (p *Page) EOS() bool { return p.HeaderType&flagEOS != 0 }

// parsePage decodes the page at the start of raw, verifying its checksum.
//
// It returns the page and the number of bytes it occupies. If raw holds the
// beginning of a plausible page but not all of it, it returns errNeedMore and
// the caller should retry with more data.
func parsePage(raw []byte) (*Page, int, error) {
	if len(raw) < headerSize {
		return nil, 0, errNeedMore
	}
	if string(raw[:4]) != capturePattern {
		return nil, 0, errors.Wrapf(ErrInvalidPage,
			"bad capture pattern %s", fmtutil.HexSlice(raw[:4]))
	}

	var h pageHeader
	if err := struc.Unpack(&byteslicereader.R{Buffer: raw[:headerSize]}, &h); err != nil {
		return nil, 0, errors.Wrap(err, "decoding page header")
	}
	if h.Version != 0 {
		return nil, 0, errors.Wrapf(ErrInvalidPage,
			"unsupported stream structure version %d", h.Version)
	}

	numSegments := int(h.NumSegments)
	if len(raw) < headerSize+numSegments {
		return nil, 0, errNeedMore
	}
	segments := raw[headerSize : headerSize+numSegments]

	payloadSize := 0
	for _, l := range segments {
		payloadSize += int(l)
	}
	total := headerSize + numSegments + payloadSize
	if len(raw) < total {
		return nil, 0, errNeedMore
	}

	// The checksum covers the whole page with its CRC field zeroed.
	crc := crcUpdate(0, raw[:crcOffset])
	crc = crcUpdate(crc, []byte{0, 0, 0, 0})
	crc = crcUpdate(crc, raw[crcOffset+4:total])
	if crc != h.CRC {
		return nil, 0, errors.Wrapf(ErrBadCRC,
			"page %d of stream %#08x: calculated %#08x, header says %#08x",
			h.Sequence, h.Serial, crc, h.CRC)
	}

	return &Page{
		Version:         h.Version,
		HeaderType:      h.HeaderType,
		GranulePosition: h.GranulePosition,
		Serial:          h.Serial,
		Sequence:        h.Sequence,
		Segments:        segments,
		Payload:         raw[headerSize+numSegments : total],
		Raw:             raw[:total],
	}, total, nil
}

// segmentTable returns the lacing values for a packet of n payload bytes: a
// run of 255s followed by the remainder. Packets whose size is an exact
// multiple of 255 end with a zero lacing value, and an empty packet is the
// single value zero.
func segmentTable(n int) []byte {
	t := make([]byte, n/255+1)
	for i := 0; i < len(t)-1; i++ {
		t[i] = 255
	}
	t[len(t)-1] = byte(n % 255)
	return t
}
