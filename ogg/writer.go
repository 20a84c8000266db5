// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/akx/opustags/support/bufferpool"
)

// Writer emits an Ogg stream.
//
// It operates in two modes that must not interleave: WritePage copies a
// decoded page through byte for byte, while WritePacket and FlushPage
// assemble fresh pages for the stream declared with PrepareStream.
type Writer struct {
	dst io.Writer

	pool bufferpool.Pool

	streamReady bool
	serial      uint32
	sequence    uint32

	pending []pendingPacket
}

type pendingPacket struct {
	data    []byte
	lacing  []byte
	granule int64
	bos     bool
	eos     bool
}

// NewWriter creates a Writer emitting pages to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		dst:  dst,
		pool: bufferpool.Pool{Size: maxPageSize},
	}
}

// WritePage copies a page through verbatim, checksum included.
//
// It returns ErrUnflushedPackets if packets submitted with WritePacket have
// not been flushed yet.
func (w *Writer) WritePage(page *Page) error {
	if len(w.pending) > 0 {
		return ErrUnflushedPackets
	}
	_, err := w.dst.Write(page.Raw)
	return errors.Wrap(err, "writing page")
}

// PrepareStream declares the logical stream that subsequent WritePacket
// calls belong to. Preparing the stream it is already on is a no-op;
// switching serial numbers resets the page sequence and discards any
// unflushed packets.
func (w *Writer) PrepareStream(serial uint32) {
	if w.streamReady && w.serial == serial {
		return
	}
	w.serial = serial
	w.sequence = 0
	w.pending = nil
	w.streamReady = true
}

// WritePacket queues a packet for the next FlushPage. The packet data is
// copied and may be reused by the caller.
//
// It returns ErrStreamNotReady before the first PrepareStream.
func (w *Writer) WritePacket(pkt *Packet) error {
	if !w.streamReady {
		return ErrStreamNotReady
	}
	data := append([]byte(nil), pkt.Bytes...)
	w.pending = append(w.pending, pendingPacket{
		data:    data,
		lacing:  segmentTable(len(data)),
		granule: pkt.GranulePos,
		bos:     pkt.BOS,
		eos:     pkt.EOS,
	})
	return nil
}

// flushedPage accumulates one output page during FlushPage.
type flushedPage struct {
	lacing    []byte
	payload   []byte
	granule   int64
	continued bool
	eos       bool
}

// FlushPage encodes all queued packets and writes them out, spilling onto as
// many pages as the lacing table requires. Flushing with nothing queued is a
// no-op.
func (w *Writer) FlushPage() error {
	if len(w.pending) == 0 {
		return nil
	}

	pages := []*flushedPage{}
	cur := &flushedPage{granule: -1}
	midPacket := false
	for _, pp := range w.pending {
		offset := 0
		for i, l := range pp.lacing {
			if len(cur.lacing) == maxSegments {
				pages = append(pages, cur)
				cur = &flushedPage{granule: -1, continued: midPacket}
			}
			n := int(l)
			cur.lacing = append(cur.lacing, l)
			cur.payload = append(cur.payload, pp.data[offset:offset+n]...)
			offset += n
			midPacket = i < len(pp.lacing)-1
			if !midPacket {
				cur.granule = pp.granule
				if pp.eos {
					cur.eos = true
				}
			}
		}
	}
	pages = append(pages, cur)

	bos := w.sequence == 0 && w.pending[0].bos
	for i, pg := range pages {
		var flags byte
		if pg.continued {
			flags |= flagContinued
		}
		if bos && i == 0 {
			flags |= flagBOS
		}
		if pg.eos {
			flags |= flagEOS
		}
		if err := w.writePage(flags, pg.granule, pg.lacing, pg.payload); err != nil {
			return err
		}
	}

	w.pending = nil
	return nil
}

// writePage encodes and emits a single page, computing its checksum over the
// encoded bytes.
func (w *Writer) writePage(flags byte, granule int64, lacing, payload []byte) error {
	h := pageHeader{
		Version:         0,
		HeaderType:      flags,
		GranulePosition: granule,
		Serial:          w.serial,
		Sequence:        w.sequence,
		CRC:             0,
		NumSegments:     uint8(len(lacing)),
	}
	copy(h.CapturePattern[:], capturePattern)

	pb := w.pool.Get()
	defer pb.Release()

	buf := bytes.NewBuffer(pb.Bytes()[:0])
	if err := struc.Pack(buf, &h); err != nil {
		return errors.Wrap(err, "encoding page header")
	}
	buf.Write(lacing)
	buf.Write(payload)

	raw := buf.Bytes()
	binary.LittleEndian.PutUint32(raw[crcOffset:crcOffset+4], crcUpdate(0, raw))

	if _, err := w.dst.Write(raw); err != nil {
		return errors.Wrap(err, "writing page")
	}
	w.sequence++
	return nil
}
