// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/errs"
)

// bitWriter packs unsigned integers of arbitrary width into a byte stream,
// most-significant bit first. Incomplete bytes are buffered until enough bits
// accumulate. Failures on the underlying writer are raised as panics and must
// be recovered at the public API boundary.
type bitWriter struct {
	wr      io.Writer
	bufBits uint32  // Buffer of unwritten bits
	numBits uint    // Number of valid bits in bufBits
	offset  int64   // Number of bytes written to the underlying writer
	arr     [4]byte // Staging area for completed bytes
}

func (bw *bitWriter) Init(wr io.Writer) {
	*bw = bitWriter{wr: wr}
}

// BytesWritten reports the number of bytes emitted to the underlying writer.
func (bw *bitWriter) BytesWritten() int64 { return bw.offset }

// WriteBits appends the low nb bits of val, most-significant bit first.
// It assumes nb <= 16.
func (bw *bitWriter) WriteBits(val uint, nb uint) {
	bw.bufBits = bw.bufBits<<nb | uint32(val&(1<<nb-1))
	bw.numBits += nb

	var cnt int
	for bw.numBits >= 8 {
		bw.numBits -= 8
		bw.arr[cnt] = byte(bw.bufBits >> bw.numBits)
		cnt++
	}
	bw.bufBits &= 1<<bw.numBits - 1
	if cnt > 0 {
		bw.write(bw.arr[:cnt])
	}
}

// WritePads appends zero bits until the stream is byte aligned.
func (bw *bitWriter) WritePads() {
	if bw.numBits > 0 {
		bw.WriteBits(0, 8-bw.numBits)
	}
}

// WriteAligned reports whether the stream is at a byte boundary.
func (bw *bitWriter) WriteAligned() bool { return bw.numBits == 0 }

func (bw *bitWriter) write(buf []byte) {
	cnt, err := bw.wr.Write(buf)
	bw.offset += int64(cnt)
	errs.Panic(err)
}
