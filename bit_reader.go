// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/ioutil"
)

// The actual read interface needed by the bitReader.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// bitReader unpacks unsigned integers of arbitrary width from a byte stream,
// most-significant bit first. It never reads more bytes than necessary, so a
// well-formed stream leaves the underlying reader positioned exactly past the
// final padding byte.
type bitReader struct {
	rd      byteReader
	bufBits uint32 // Buffer of unread bits
	numBits uint   // Number of valid bits in bufBits
	offset  int64  // Number of bytes read from the underlying reader
	sawEOF  bool   // The underlying reader is exhausted

	// Lazily allocated wrapper for readers without a ReadByte method.
	brd ioutil.ByteReader
}

func (br *bitReader) Init(rd io.Reader) {
	*br = bitReader{}
	if rr, ok := rd.(byteReader); ok {
		br.rd = rr
	} else {
		br.brd.Reader = rd
		br.rd = &br.brd
	}
}

// BytesRead reports the number of bytes consumed from the underlying reader.
func (br *bitReader) BytesRead() int64 { return br.offset }

// ReadBits reads the next nb bits, most-significant bit first, assuming
// nb <= 16. It keeps at least a full byte buffered whenever the underlying
// stream allows, so that the all-zero alignment padding, which is always
// shorter than a byte and only ever at the very end, can be told apart from a
// real code sitting in the final byte. It distinguishes the two ways a stream
// may run out:
//
//	io.EOF              the stream ended at a code boundary; at most the
//	                    zero alignment padding remained unconsumed
//	io.ErrUnexpectedEOF the stream ended in the middle of a code
func (br *bitReader) ReadBits(nb uint) (uint, error) {
	for !br.sawEOF && (br.numBits < nb || br.numBits < 8) {
		c, err := br.rd.ReadByte()
		if err != nil {
			if err != io.EOF {
				return 0, err
			}
			br.sawEOF = true
			break
		}
		br.bufBits = br.bufBits<<8 | uint32(c)
		br.numBits += 8
		br.offset++
	}
	if br.sawEOF && br.numBits < 8 && br.bufBits == 0 {
		return 0, io.EOF
	}
	if br.numBits < nb {
		return 0, io.ErrUnexpectedEOF
	}

	br.numBits -= nb
	val := uint(br.bufBits >> br.numBits)
	br.bufBits &= 1<<br.numBits - 1
	return val, nil
}
