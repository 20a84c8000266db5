// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package opus

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/akx/opustags/ogg"
	"github.com/akx/opustags/support/byteslicereader"
)

// tagsMagic opens the comment header.
var tagsMagic = []byte("OpusTags")

// tagsPacketNo is the comment header's fixed position in the stream: it is
// always the second packet.
const tagsPacketNo = 1

// Tags is a decoded comment header.
type Tags struct {
	// Vendor identifies the software that produced the stream.
	Vendor string

	// Comments holds the "NAME=value" metadata entries, in file order.
	Comments []string

	// ExtraData is whatever followed the last comment. It has no defined
	// meaning, but dropping it would make a rewrite lossy.
	ExtraData []byte
}

// next reads a declared number of bytes, guarding the uint32-to-int
// conversion so that lengths near the uint32 maximum cannot wrap negative on
// 32-bit platforms.
func next(r *byteslicereader.R, length uint32) ([]byte, error) {
	if int64(length) > int64(r.Remaining()) {
		return nil, io.ErrUnexpectedEOF
	}
	return r.Next(int(length))
}

// ParseTags decodes a comment header packet.
//
// Every declared length is checked against the bytes actually present, and
// each truncation maps to its own sentinel error. The decoded data is copied
// out of pkt, so it stays valid however long the caller keeps it.
func ParseTags(pkt *ogg.Packet) (*Tags, error) {
	r := byteslicereader.R{Buffer: pkt.Bytes, AlwaysCopy: true}

	magic, err := r.Next(len(tagsMagic))
	if err != nil {
		return nil, ErrCutMagicNumber
	}
	if !bytes.Equal(magic, tagsMagic) {
		return nil, ErrBadMagicNumber
	}

	var tags Tags

	vendorLen, err := r.Uint32()
	if err != nil {
		return nil, ErrCutVendorLength
	}
	vendor, err := next(&r, vendorLen)
	if err != nil {
		return nil, ErrCutVendorData
	}
	tags.Vendor = string(vendor)

	count, err := r.Uint32()
	if err != nil {
		return nil, ErrCutCommentCount
	}

	// The count is untrusted; comments are accumulated as their data
	// proves itself rather than preallocated.
	for i := uint32(0); i < count; i++ {
		length, err := r.Uint32()
		if err != nil {
			return nil, ErrCutCommentLength
		}
		comment, err := next(&r, length)
		if err != nil {
			return nil, ErrCutCommentData
		}
		tags.Comments = append(tags.Comments, string(comment))
	}

	tags.ExtraData = r.Rest()
	return &tags, nil
}

// Render encodes t into a fresh comment header packet. Rendering an
// unmodified Tags reproduces the packet it was parsed from byte for byte.
func (t *Tags) Render() *ogg.Packet {
	size := len(tagsMagic) + 4 + len(t.Vendor) + 4
	for _, c := range t.Comments {
		size += 4 + len(c)
	}
	size += len(t.ExtraData)

	data := make([]byte, 0, size)
	data = append(data, tagsMagic...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(t.Vendor)))
	data = append(data, t.Vendor...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(t.Comments)))
	for _, c := range t.Comments {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(c)))
		data = append(data, c...)
	}
	data = append(data, t.ExtraData...)

	return &ogg.Packet{
		Bytes:      data,
		GranulePos: 0,
		PacketNo:   tagsPacketNo,
	}
}

// Delete removes every comment named name. Matching follows the FIELD=value
// convention and is exact: a comment matches when it starts with name,
// case-sensitively, immediately followed by '='.
func (t *Tags) Delete(name string) {
	kept := t.Comments[:0]
	for _, c := range t.Comments {
		if len(c) > len(name) && c[len(name)] == '=' && c[:len(name)] == name {
			continue
		}
		kept = append(kept, c)
	}
	t.Comments = kept
}
