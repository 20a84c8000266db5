// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package byteslicereader offers R, a slice-backed reader built for decoding
// binary layouts in place.
//
// Standard io.Reader methods require that data be copied into a target
// buffer. The zero-copy options, Peek, Next, and Rest, return slices of R's
// underlying Buffer instead.
//
// Holding a reference to the underlying Buffer means that the Buffer must
// persist as long as that reference is valid, and that modifications to that
// reference must be coordinated with any other consumers. Decoders whose
// results outlive the Buffer set AlwaysCopy, which makes every returned
// slice an independent copy.
//
// Sized reads are all-or-nothing: Next and Uint32 either consume exactly
// what was asked for or fail without advancing, so a decoder can map a
// failed read directly to the field that was truncated.
package byteslicereader

import (
	"encoding/binary"
	"io"
)

// R is an io.Reader-inspired cursor over a byte slice.
//
// R can act like an io.Reader and io.ByteReader, allowing it to interface
// with other APIs at the expense of introducing data copying. This may be
// acceptable for small amounts of data.
//
// R can be copied, creating a snapshot of its current state.
type R struct {
	// Buffer is the backing buffer for this reader.
	Buffer []byte

	// AlwaysCopy, if true, causes zero-copy methods to return copies of their
	// backing data instead of direct references.
	//
	// All zero-copy methods honor AlwaysCopy, so it is safe to assume that data
	// returned by all R methods is owned by the caller when AlwaysCopy is true.
	AlwaysCopy bool

	// pos is the R's position within Buffer.
	pos int64
}

var _ interface {
	io.Reader
	io.ByteReader
} = (*R)(nil)

func (r *R) remainingSlice() []byte {
	if r.pos >= int64(len(r.Buffer)) {
		return nil
	}
	return r.Buffer[r.pos:]
}

// Remaining returns the number of bytes remaining in the reader, from the
// current position.
func (r *R) Remaining() int { return len(r.remainingSlice()) }

// Read implements io.Reader.
//
// Note that using Read causes data to be copied.
func (r *R) Read(b []byte) (amt int, err error) {
	remaining := r.remainingSlice()
	amt = copy(b, remaining)

	r.pos += int64(amt)
	if r.pos >= int64(len(r.Buffer)) {
		err = io.EOF
	}
	return
}

// ReadByte implements io.ByteReader.
func (r *R) ReadByte() (b byte, err error) {
	if r.pos >= int64(len(r.Buffer)) {
		return 0, io.EOF
	}

	b, r.pos = r.Buffer[r.pos], r.pos+1
	return
}

// Peek returns the next n bytes in r without advancing it.
//
// Peek is a zero-copy method, and returns a slice of the underlying Buffer
// unless AlwaysCopy is true.
//
// If there are fewer than n bytes in r, Peek will return as many as possible.
func (r *R) Peek(n int) []byte {
	v := r.remainingSlice()
	if n < len(v) {
		v = v[:n]
	}

	if r.AlwaysCopy {
		v = append([]byte(nil), v...)
	}

	return v
}

// Next returns the next n bytes in r, advancing r past them.
//
// Next is a zero-copy equivalent to Read, and returns a slice of the
// underlying Buffer unless AlwaysCopy is true.
//
// If fewer than n bytes remain, Next returns (nil, io.ErrUnexpectedEOF) and
// does not advance r.
func (r *R) Next(n int) ([]byte, error) {
	v := r.remainingSlice()
	if n > len(v) {
		return nil, io.ErrUnexpectedEOF
	}
	v = v[:n]

	if r.AlwaysCopy {
		v = append([]byte(nil), v...)
	}

	r.pos += int64(n)
	return v, nil
}

// Uint32 reads a little-endian 32-bit unsigned integer.
//
// If fewer than 4 bytes remain, Uint32 returns io.ErrUnexpectedEOF and does
// not advance r.
func (r *R) Uint32() (uint32, error) {
	v := r.remainingSlice()
	if len(v) < 4 {
		return 0, io.ErrUnexpectedEOF
	}

	r.pos += 4
	return binary.LittleEndian.Uint32(v), nil
}

// Rest returns everything from the current position through the end of the
// Buffer, advancing r to the end. The result is empty, never nil, when no
// bytes remain.
//
// Rest is a zero-copy method, and returns a slice of the underlying Buffer
// unless AlwaysCopy is true.
func (r *R) Rest() []byte {
	v := r.remainingSlice()
	if r.AlwaysCopy || v == nil {
		v = append([]byte{}, v...)
	}

	r.pos = int64(len(r.Buffer))
	return v
}
