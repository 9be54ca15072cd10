// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements an adaptive-dictionary LZW compressed data format.
//
// The format encodes an arbitrary byte stream as a sequence of variable-width
// integer codes, where each code stands for a byte phrase learned while
// scanning the input. A fixed header carries the run configuration:
//
//	policy(2) | minWidth(5) | maxWidth(5) | alphabetSize(16)
//	alphabetSize × symbol(8)
//	<code stream, each code on the current width W>
//
// All fields and codes are packed most-significant bit first. The symbol
// order in the header is significant: symbol i is permanently bound to
// code i. Code alphabetSize is reserved as the CLEAR marker and code
// alphabetSize+1 is the first code assignable to a multi-symbol phrase.
//
// The code width W starts at minWidth and grows by one bit whenever the next
// assignable code would no longer fit, up to maxWidth. Both the encoder and
// the decoder derive the transition points from the same running code count,
// so no explicit width signal ever appears in the stream.
//
// Once the code space is exhausted, the configured policy decides how the
// codebook behaves: Freeze makes it permanently static, Reset wipes it back
// to the initial alphabet at a CLEAR boundary, and LRU/LFU reuse the code of
// the least-recently or least-frequently accessed phrase. The decoder never
// decides any of this on its own; it mirrors the exact table transitions
// implied by the codes it reads.
package lzw

const (
	bitsPerPolicy    = 2
	bitsPerWidth     = 5
	bitsPerAlphaSize = 16
	bitsPerSymbol    = 8

	maxAlphaSize = 1<<bitsPerAlphaSize - 1
)

// MinWidth and MaxWidth bound the permissible code widths.
const (
	MinWidth = 1
	MaxWidth = 16
)

// Policy selects how the codebook behaves once the code space is full.
type Policy int

const (
	Freeze Policy = iota // Reject new phrases; the table becomes static
	Reset                // Emit CLEAR and wipe back to the initial alphabet
	LRU                  // Evict the least-recently accessed phrase
	LFU                  // Evict the least-frequently accessed phrase
)

func (p Policy) String() string {
	switch p {
	case Freeze:
		return "freeze"
	case Reset:
		return "reset"
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name to its Policy value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "freeze":
		return Freeze, nil
	case "reset":
		return Reset, nil
	case "lru":
		return LRU, nil
	case "lfu":
		return LFU, nil
	default:
		return 0, ErrBadConfig
	}
}

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	errClosed error = Error("stream is closed")

	// ErrBadConfig reports an invalid encoding configuration. It is always
	// surfaced before any stream I/O takes place.
	ErrBadConfig error = Error("invalid stream configuration")

	// ErrHeader reports a malformed or truncated stream header.
	// No output is ever produced for such a stream.
	ErrHeader error = Error("header is corrupted")

	// ErrInvalidCode reports a code that exceeds what the codebook could
	// validly contain at that point. The two codebooks have desynchronized
	// and decoding aborts.
	ErrInvalidCode error = Error("invalid code reference")

	// ErrOutOfAlphabet reports an input byte with no single-symbol entry in
	// the declared alphabet.
	ErrOutOfAlphabet error = Error("symbol outside of alphabet")
)
