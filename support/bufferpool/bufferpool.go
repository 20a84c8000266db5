// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package bufferpool recycles fixed-capacity byte buffers.
package bufferpool

import (
	"sync"
)

// Pool maintains a pool of buffers. It offers a new buffer when one is
// unavailable.
type Pool struct {
	// Size is the size of the buffers in this pool.
	Size int

	base sync.Pool
}

// Get returns a buffer, allocating one if one is not available.
//
// The caller should return the buffer to the pool by calling its Release
// method when done with it.
func (bp *Pool) Get() *Buffer {
	b, ok := bp.base.Get().(*Buffer)
	if !ok {
		// Create a blank buffer. When it is released, it will be added back to
		// the pool.
		b = &Buffer{
			bytes: make([]byte, bp.Size),
		}
	}

	// Attune the allocated buffer.
	b.pool = bp
	b.size = -1
	return b
}

// Buffer contains a byte buffer that can be released into a Pool for reuse.
//
// Failure to release a Buffer will not cause a memory leak, but will prevent
// its reuse.
type Buffer struct {
	bytes []byte
	size  int

	pool *Pool
}

// Bytes returns this buffer's byte slice.
func (b *Buffer) Bytes() []byte {
	if b.size >= 0 {
		return b.bytes[:b.size]
	}
	return b.bytes
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.Bytes()) }

// Truncate artificially caps the number of bytes returned by Bytes.
func (b *Buffer) Truncate(size int) {
	b.size = size
}

// Release returns the buffer to its buffer pool.
//
// A Buffer must only be released once, and must not be used afterwards.
func (b *Buffer) Release() {
	var pool *Pool
	pool, b.pool = b.pool, nil
	pool.base.Put(b)
}
