// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

import (
	"io"

	"github.com/pkg/errors"

	"github.com/akx/opustags/support/fmtutil"
	"github.com/akx/opustags/support/logging"
)

// readChunkSize is how much data a Reader asks the source for at a time. It
// comfortably exceeds the largest possible page, so the buffer never needs
// to grow in practice.
const readChunkSize = 64 * 1024

// Reader decodes an Ogg stream page by page.
//
// The first page seen determines the stream of interest: ReadPacket only
// assembles packets whose pages carry that serial number. Pages from other
// logical streams are still returned by ReadPage so the caller can copy them
// through.
//
// Reader does not own its source and will not close it.
type Reader struct {
	// Logger, if not nil, is used to log anomalies in the stream and, at
	// debug level, every assembled packet.
	Logger logging.L

	src io.Reader

	buf   []byte
	start int
	end   int
	eof   bool

	serial      uint32
	streamReady bool
	firstBOS    bool

	page    *Page
	pageFed bool

	pending  [][]byte
	partial  []byte
	packetNo int64
}

// NewReader creates a Reader decoding pages from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src: src,
		buf: make([]byte, readChunkSize),
	}
}

// ReadPage reads the next page from the source.
//
// The returned page and any packets not yet pulled from the previous page
// alias the Reader's buffer; the previous page must not be used after this
// call. ReadPage returns io.EOF at a clean end of input, ErrUnexpectedEOS if
// the input ends mid-page, and ErrInvalidPage or ErrBadCRC on corrupt data.
func (r *Reader) ReadPage() (*Page, error) {
	r.page = nil
	r.pageFed = false
	r.pending = nil

	for {
		if r.end > r.start {
			page, consumed, err := parsePage(r.buf[r.start:r.end])
			switch {
			case err == nil:
				r.start += consumed
				if !r.streamReady {
					r.serial = page.Serial
					r.firstBOS = page.BOS()
					r.streamReady = true
				}
				r.page = page
				return page, nil
			case !errors.Is(err, errNeedMore):
				return nil, err
			}
		}

		if r.eof {
			if r.end == r.start {
				return nil, io.EOF
			}
			return nil, errors.Wrapf(ErrUnexpectedEOS,
				"%d trailing bytes", r.end-r.start)
		}

		// Compact the buffered tail, then grow if a page still can't fit.
		if r.start > 0 {
			r.end = copy(r.buf, r.buf[r.start:r.end])
			r.start = 0
		}
		if r.end == len(r.buf) {
			grown := make([]byte, 2*len(r.buf))
			r.end = copy(grown, r.buf[:r.end])
			r.buf = grown
		}

		n, err := r.src.Read(r.buf[r.end:])
		r.end += n
		switch {
		case err == io.EOF:
			r.eof = true
		case err != nil:
			return nil, errors.Wrap(err, "reading page data")
		}
	}
}

// Serial returns the serial number of the stream of interest. It is only
// meaningful once ReadPage has returned at least one page.
func (r *Reader) Serial() uint32 { return r.serial }

// ReadPacket returns the next packet completing on the current page.
//
// It returns ErrStreamNotReady before the first successful ReadPage, and
// ErrEndOfPage once the current page is exhausted (immediately, for pages of
// other logical streams). Packet data is copied out of the page buffer and
// remains valid indefinitely.
func (r *Reader) ReadPacket() (*Packet, error) {
	if !r.streamReady || r.page == nil {
		return nil, ErrStreamNotReady
	}
	if !r.pageFed {
		r.feedPage(r.page)
		r.pageFed = true
	}
	if len(r.pending) == 0 {
		return nil, ErrEndOfPage
	}

	data := r.pending[0]
	r.pending = r.pending[1:]

	pkt := &Packet{
		Bytes:      data,
		GranulePos: -1,
		PacketNo:   r.packetNo,
	}
	if r.packetNo == 0 && r.firstBOS {
		pkt.BOS = true
	}
	if len(r.pending) == 0 {
		// Last packet completing on this page. A fragment of the next packet
		// may still trail behind it; the granule belongs to this one.
		pkt.GranulePos = r.page.GranulePosition
		pkt.EOS = r.page.EOS()
	}
	r.packetNo++

	logging.Must(r.Logger).Debugf("Assembled packet %d (%d byte(s)):\n%s",
		pkt.PacketNo, len(pkt.Bytes), fmtutil.Hex(pkt.Bytes))
	return pkt, nil
}

// feedPage splits the page payload along its lacing table, queueing every
// packet that completes and carrying the unfinished tail over to the next
// page.
func (r *Reader) feedPage(page *Page) {
	if page.Serial != r.serial {
		return
	}

	if !page.Continued() && r.partial != nil {
		logging.Must(r.Logger).Warnf(
			"Dropping unfinished %d-byte packet: page %d does not continue it.",
			len(r.partial), page.Sequence)
		r.partial = nil
	}

	offset := 0
	i := 0
	if page.Continued() && r.partial == nil {
		// Nothing to continue; skip the orphaned fragment.
		skipped := 0
		for ; i < len(page.Segments); i++ {
			skipped += int(page.Segments[i])
			offset = skipped
			if page.Segments[i] < 255 {
				i++
				break
			}
		}
		logging.Must(r.Logger).Warnf(
			"Dropping %d orphaned bytes continued from a missing page.", skipped)
	}

	packet := r.partial
	r.partial = nil
	for ; i < len(page.Segments); i++ {
		n := int(page.Segments[i])
		packet = append(packet, page.Payload[offset:offset+n]...)
		offset += n
		if n < 255 {
			r.pending = append(r.pending, packet)
			packet = nil
		}
	}
	r.partial = packet
}
