// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "io"

// header is the fixed-layout run configuration. It is written once at encode
// start, parsed once at decode start, and read-only for the rest of the
// stream on both sides.
type header struct {
	policy   Policy
	minWidth uint
	maxWidth uint
	alphabet []byte // Symbol for each code 0..len(alphabet)-1
}

// valid reports whether the header describes a usable run. The initial
// alphabet plus the CLEAR code must fit the widest code space, otherwise some
// single-symbol codes could never be emitted at all.
func (h *header) valid() bool {
	switch {
	case h.minWidth < MinWidth || h.minWidth > MaxWidth:
		return false
	case h.maxWidth < MinWidth || h.maxWidth > MaxWidth:
		return false
	case h.minWidth > h.maxWidth:
		return false
	case len(h.alphabet) == 0 || len(h.alphabet) > maxAlphaSize:
		return false
	case uint(len(h.alphabet))+1 > 1<<h.maxWidth:
		return false
	}
	return true
}

func (h *header) write(bw *bitWriter) {
	bw.WriteBits(uint(h.policy), bitsPerPolicy)
	bw.WriteBits(h.minWidth, bitsPerWidth)
	bw.WriteBits(h.maxWidth, bitsPerWidth)
	bw.WriteBits(uint(len(h.alphabet)), bitsPerAlphaSize)
	for _, sym := range h.alphabet {
		bw.WriteBits(uint(sym), bitsPerSymbol)
	}
}

func (h *header) read(br *bitReader) error {
	fields := [4]uint{}
	for i, nb := range [4]uint{bitsPerPolicy, bitsPerWidth, bitsPerWidth, bitsPerAlphaSize} {
		val, err := br.ReadBits(nb)
		if err != nil {
			return headerErr(err)
		}
		fields[i] = val
	}
	h.policy = Policy(fields[0])
	h.minWidth, h.maxWidth = fields[1], fields[2]

	h.alphabet = make([]byte, fields[3])
	for i := range h.alphabet {
		sym, err := br.ReadBits(bitsPerSymbol)
		if err != nil {
			return headerErr(err)
		}
		h.alphabet[i] = byte(sym)
	}

	if !h.valid() {
		return ErrHeader
	}
	return nil
}

// headerErr converts read failures within the header to ErrHeader, leaving
// genuine I/O errors untouched.
func headerErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrHeader
	}
	return err
}

// runContext is the immutable snapshot of all run-wide values derived from
// the header. It is computed once and never mutated afterwards.
type runContext struct {
	alphabet []byte // Symbol bound to each code 0..numSyms-1
	symCodes [256]int32
	numSyms  uint
	clear    uint // Reserved epoch-reset marker, numSyms
	base     uint // First code assignable to a multi-symbol phrase
	minWidth uint
	maxWidth uint
	maxCodes uint // Exclusive upper bound of the code space
	policy   Policy
}

func newRunContext(h *header) *runContext {
	ctx := &runContext{
		alphabet: h.alphabet,
		numSyms:  uint(len(h.alphabet)),
		clear:    uint(len(h.alphabet)),
		base:     uint(len(h.alphabet)) + 1,
		minWidth: h.minWidth,
		maxWidth: h.maxWidth,
		maxCodes: 1 << h.maxWidth,
		policy:   h.policy,
	}
	for i := range ctx.symCodes {
		ctx.symCodes[i] = -1
	}
	for i, sym := range h.alphabet {
		if ctx.symCodes[sym] < 0 {
			ctx.symCodes[sym] = int32(i)
		}
	}
	return ctx
}
