// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package opus decodes and re-encodes the header packets of an Ogg Opus
// stream (RFC 7845).
//
// An Opus stream opens with two header packets. The identification header
// ("OpusHead") carries playback parameters and is passed through untouched;
// only its magic number is checked. The comment header ("OpusTags") is the
// one worth decoding:
//
//	Bytes 0-7:  "OpusTags"
//	Bytes 8-11: Vendor string length (little-endian)
//	Then:       Vendor string
//	4 bytes:    Comment count
//	Per comment:
//	  4 bytes:  Comment length
//	  Then:     Comment data, "NAME=value" by convention
//
// Anything after the last comment is kept as opaque extra data so that a
// decode/re-encode cycle reproduces the packet byte for byte.
//
// Every declared length is validated against the bytes actually present
// before it is trusted, with arithmetic that cannot overflow, and each
// possible truncation maps to its own sentinel error.
package opus
