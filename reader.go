// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"
)

// A Reader is an io.ReadCloser that decompresses an underlying code stream.
// It maintains its own codebook, seeded identically to the encoder's, and
// performs only the table transitions implied by the codes it reads.
type Reader struct {
	br   bitReader
	ctx  *runContext
	cb   *codebook
	prev string // Previously output phrase, empty at an epoch start
	buf  []byte // Decoded bytes not yet consumed
	cnt  int64  // Total number of raw bytes produced
	err  error  // Persistent error
}

// NewReader creates a new Reader reading the stream from rd. The header is
// parsed immediately; a malformed header is reported as ErrHeader and no
// output is ever produced for such a stream.
func NewReader(rd io.Reader) (*Reader, error) {
	zr := new(Reader)
	if err := zr.Reset(rd); err != nil {
		return nil, err
	}
	return zr, nil
}

// Reset restarts the Reader on a new underlying io.Reader, parsing the stream
// header for the new session.
func (zr *Reader) Reset(rd io.Reader) error {
	*zr = Reader{buf: zr.buf[:0]}
	zr.br.Init(rd)

	var h header
	if err := h.read(&zr.br); err != nil {
		zr.err = err
		return err
	}
	zr.ctx = newRunContext(&h)
	zr.cb = newCodebook(zr.ctx)
	return nil
}

// ReadCount reports the number of bytes consumed from the underlying reader.
func (zr *Reader) ReadCount() int64 { return zr.br.BytesRead() }

// OutputCount reports the number of raw bytes produced so far.
func (zr *Reader) OutputCount() int64 { return zr.cnt }

// Read decompresses into buf. When the stream ends mid-code, every byte
// decoded before the truncation point is still delivered ahead of the
// io.ErrUnexpectedEOF.
func (zr *Reader) Read(buf []byte) (int, error) {
	for len(zr.buf) == 0 {
		if zr.err != nil {
			return 0, zr.err
		}
		zr.err = zr.next()
	}
	cnt := copy(buf, zr.buf)
	zr.buf = zr.buf[cnt:]
	zr.cnt += int64(cnt)
	return cnt, nil
}

// next decodes a single code and mirrors the exact insert or evict action the
// encoder performed at the equivalent point in the stream.
//
// The decoder runs one insertion behind the encoder: the entry completing the
// previous phrase cannot be built until the first byte of the current one is
// known. The pending slot is therefore computed up front, both to adjust the
// effective code count for width growth and to recognize a code that refers
// to the very entry being defined.
func (zr *Reader) next() error {
	cb := zr.cb

	var slot uint
	kind := slotNone
	if len(zr.prev) > 0 {
		slot, kind = cb.nextSlot()
	}
	eff := cb.nextCode
	if kind == slotGrow {
		eff++
	}
	cb.ensureWidth(eff)

	code, err := zr.br.ReadBits(cb.width)
	if err != nil {
		return err
	}

	if zr.ctx.policy == Reset && code == zr.ctx.clear {
		// The encoder's table filled: wipe back to the initial alphabet.
		// The pending insertion was never performed on the far side either.
		cb.reset()
		zr.prev = ""
		return nil
	}

	var cur string
	if kind != slotNone && code == slot {
		// The code refers to the entry that the pending insertion is about
		// to define, so the phrase must start and end with its own first
		// byte: previous phrase plus that phrase's first byte.
		cur = zr.prev + zr.prev[:1]
	} else if s, ok := cb.phrase(code); ok {
		cur = s
	} else {
		return ErrInvalidCode
	}

	if kind != slotNone {
		cb.insert(slot, kind, zr.prev+cur[:1])
	}
	cb.touch(code)

	zr.buf = append(zr.buf[:0], cur...)
	zr.prev = cur
	return nil
}

// Close marks the Reader as closed. It does not close the underlying reader.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return errClosed
	}
	zr.err = errClosed
	return nil
}
