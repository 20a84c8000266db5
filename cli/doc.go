// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package cli implements the opustags command.
//
// opustags edits the comment header of an Ogg Opus file without touching the
// audio: it decodes the two header packets, applies the requested tag edits,
// and copies every other page through byte for byte. Without an output, it
// prints the current tags instead.
//
// File output is always staged: bytes land in a temporary sibling file that
// only replaces the destination once the whole stream has been processed, so
// a failure mid-way never leaves a half-written file behind.
package cli
