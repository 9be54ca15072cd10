// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/errs"
)

// WriterConfig configures an encoding session.
type WriterConfig struct {
	// MinWidth and MaxWidth bound the code width in bits and must satisfy
	// MinWidth <= MaxWidth within [1, 16]. Zero values select the defaults
	// of 9 and 16.
	MinWidth int
	MaxWidth int

	// Policy selects the codebook behavior once the code space is full.
	// The zero value is Freeze.
	Policy Policy

	// Alphabet is the ordered set of admissible input symbols; symbol i is
	// permanently bound to code i. It must be non-empty, free of duplicates,
	// and together with the CLEAR code fit within MaxWidth bits.
	// ReadAlphabet produces a conforming alphabet for any text source.
	Alphabet []byte
}

// A Writer is an io.WriteCloser that compresses the bytes written to it onto
// an underlying io.Writer. The stream header is emitted upon construction;
// Close emits the code for the final pending match and pads the stream to a
// byte boundary.
type Writer struct {
	bw    bitWriter
	ctx   *runContext
	cb    *codebook
	p     []byte // Current greedy match
	pcode uint   // Code bound to p, valid while len(p) > 0
	cnt   int64  // Total number of raw bytes consumed
	err   error  // Persistent error
}

// NewWriter creates a new Writer writing to wr under the given configuration.
// Configuration problems are reported as ErrBadConfig before any bytes reach
// the underlying writer.
func NewWriter(wr io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := new(Writer)
	if err := zw.Reset(wr, conf); err != nil {
		return nil, err
	}
	return zw, nil
}

// Reset restarts the Writer on a new underlying io.Writer, writing the stream
// header for the new session.
func (zw *Writer) Reset(wr io.Writer, conf *WriterConfig) (err error) {
	h, err := buildHeader(conf)
	if err != nil {
		return err
	}
	*zw = Writer{ctx: newRunContext(h), p: zw.p[:0]}
	zw.cb = newCodebook(zw.ctx)
	zw.bw.Init(wr)

	defer errs.Recover(&err)
	h.write(&zw.bw)
	return nil
}

func buildHeader(conf *WriterConfig) (*header, error) {
	if conf == nil {
		return nil, ErrBadConfig
	}
	h := &header{
		policy:   conf.Policy,
		minWidth: uint(conf.MinWidth),
		maxWidth: uint(conf.MaxWidth),
		alphabet: conf.Alphabet,
	}
	if conf.MinWidth == 0 {
		h.minWidth = 9
	}
	if conf.MaxWidth == 0 {
		h.maxWidth = 16
	}
	if conf.Policy < Freeze || conf.Policy > LFU {
		return nil, ErrBadConfig
	}
	if !h.valid() {
		return nil, ErrBadConfig
	}
	var seen [256]bool
	for _, sym := range h.alphabet {
		if seen[sym] {
			return nil, ErrBadConfig
		}
		seen[sym] = true
	}
	return h, nil
}

// WriteCount reports the number of bytes written to the underlying writer.
func (zw *Writer) WriteCount() int64 { return zw.bw.BytesWritten() }

// InputCount reports the number of raw bytes consumed so far.
func (zw *Writer) InputCount() int64 { return zw.cnt }

// Write compresses the given bytes. The greedy match state carries across
// calls, so input may be fed in arbitrary slices.
func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	cnt, err := zw.write(buf)
	zw.cnt += int64(cnt)
	if err != nil {
		zw.err = err
	}
	return cnt, err
}

func (zw *Writer) write(buf []byte) (cnt int, err error) {
	defer errs.Recover(&err)
	for _, c := range buf {
		symCode := zw.ctx.symCodes[c]
		if symCode < 0 {
			return cnt, ErrOutOfAlphabet
		}
		if len(zw.p) == 0 {
			zw.p = append(zw.p, c)
			zw.pcode = uint(symCode)
			cnt++
			continue
		}

		zw.p = append(zw.p, c)
		if code, ok := zw.cb.lookup(string(zw.p)); ok {
			zw.pcode = code // Extend the match, emit nothing
			cnt++
			continue
		}

		// The extended phrase is unknown: emit the code for the longest
		// match, try to learn the extension, and restart the match at c.
		pc := string(zw.p)
		zw.emit(zw.pcode)
		zw.admit(pc)

		zw.p = append(zw.p[:0], c)
		zw.pcode = uint(symCode)
		cnt++
	}
	return cnt, nil
}

// emit writes a single code on the current width, growing the width first if
// the running code count requires it.
func (zw *Writer) emit(code uint) {
	zw.cb.ensureWidth(zw.cb.nextCode)
	zw.bw.WriteBits(code, zw.cb.width)
	zw.cb.touch(code)
}

// admit attempts to learn a newly discovered phrase under the active policy.
// At capacity, Reset ends the epoch with a CLEAR code while Freeze silently
// drops the phrase; LRU and LFU trade a victim's code for it.
func (zw *Writer) admit(phrase string) {
	slot, kind := zw.cb.nextSlot()
	if kind == slotNone {
		if zw.ctx.policy == Reset {
			zw.bw.WriteBits(zw.ctx.clear, zw.cb.width)
			zw.cb.reset()
		}
		return
	}
	zw.cb.insert(slot, kind, phrase)
}

// Close emits the code for the final pending match, zero-pads the stream to a
// byte boundary, and marks the Writer as closed. It does not close the
// underlying writer.
func (zw *Writer) Close() error {
	if zw.err != nil {
		return zw.err
	}
	err := zw.close()
	if err != nil {
		zw.err = err
	} else {
		zw.err = errClosed
	}
	return err
}

func (zw *Writer) close() (err error) {
	defer errs.Recover(&err)
	if len(zw.p) > 0 {
		zw.emit(zw.pcode)
		zw.p = zw.p[:0]
	}
	zw.bw.WritePads()
	return nil
}
