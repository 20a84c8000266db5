// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package ogg reads and writes the Ogg container format (RFC 3533) at the
// page and packet level.
//
// The container is a sequence of pages. Each page carries an integrity
// checksum and a lacing table that splits its payload into packet fragments:
//
//	Bytes 0-3:   "OggS" capture pattern
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (0x01 continued, 0x02 BOS, 0x04 EOS)
//	Bytes 6-13:  Granule position (int64)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of lacing values
//	Bytes 27+:   Lacing table, then payload
//
// A lacing value of 255 means the packet continues in the next segment, and
// possibly onto the next page (continued flag); a value below 255 ends the
// packet. The checksum uses the non-reflected CRC-32 polynomial 0x04C11DB7,
// which is not the IEEE variant implemented by hash/crc32.
//
// Reader pulls pages in file order and extracts the packets of the logical
// stream whose serial number appeared first. Writer either copies complete
// pages through verbatim or assembles packets into fresh pages. This is
// exactly the shape a metadata rewriter needs: decode the few packets that
// matter, forward every other page untouched.
package ogg
