// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

// Packet is a logical packet, reassembled from one or more page segments.
type Packet struct {
	// Bytes is the packet payload. Packets returned by Reader own their
	// memory and stay valid after further reads.
	Bytes []byte

	// BOS marks the first packet of the logical bitstream.
	BOS bool

	// EOS marks the last packet of the logical bitstream.
	EOS bool

	// GranulePos is the granule position of the page this packet completed
	// on, or -1 if other packets completed after it on the same page.
	GranulePos int64

	// PacketNo numbers packets within the logical bitstream, starting
	// at 0.
	PacketNo int64
}
