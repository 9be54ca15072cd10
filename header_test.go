// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "bytes"
import "testing"

import "github.com/dsnet/lzw/internal/testutil"
import "github.com/stretchr/testify/assert"

// rawHeader packs an arbitrary header bit layout, valid or not.
func rawHeader(policy, minW, maxW, alphaSize uint, symbols []byte) []byte {
	var bw bitWriter
	buf := new(bytes.Buffer)
	bw.Init(buf)
	bw.WriteBits(policy, bitsPerPolicy)
	bw.WriteBits(minW, bitsPerWidth)
	bw.WriteBits(maxW, bitsPerWidth)
	bw.WriteBits(alphaSize, bitsPerAlphaSize)
	for _, sym := range symbols {
		bw.WriteBits(uint(sym), bitsPerSymbol)
	}
	bw.WritePads()
	return buf.Bytes()
}

func TestHeaderWrite(t *testing.T) {
	h := header{policy: LRU, minWidth: 9, maxWidth: 12, alphabet: []byte("ab")}

	var bw bitWriter
	buf := new(bytes.Buffer)
	bw.Init(buf)
	h.write(&bw)
	bw.WritePads()
	assert.Equal(t, testutil.MustDecodeHex("92c000261620"), buf.Bytes())
}

func TestHeaderRead(t *testing.T) {
	vectors := []struct {
		desc  string
		input []byte
		valid bool
	}{{
		desc:  "smallest valid header",
		input: rawHeader(0, 1, 1, 1, []byte("a")),
		valid: true,
	}, {
		desc:  "typical full-range header",
		input: rawHeader(1, 9, 16, 3, []byte("abc")),
		valid: true,
	}, {
		desc:  "empty alphabet",
		input: rawHeader(0, 9, 16, 0, nil),
	}, {
		desc:  "zero minimum width",
		input: rawHeader(0, 0, 9, 1, []byte("a")),
	}, {
		desc:  "maximum width out of range",
		input: rawHeader(0, 9, 17, 1, []byte("a")),
	}, {
		desc:  "inverted width bounds",
		input: rawHeader(0, 12, 9, 1, []byte("a")),
	}, {
		desc:  "alphabet and CLEAR overflow the widest code",
		input: rawHeader(0, 3, 3, 8, []byte("abcdefgh")),
	}, {
		desc:  "alphabet cut short",
		input: rawHeader(0, 9, 16, 200, []byte("abc")),
	}, {
		desc:  "empty stream",
		input: nil,
	}}

	for _, v := range vectors {
		var br bitReader
		br.Init(bytes.NewReader(v.input))
		var h header
		err := h.read(&br)
		if v.valid {
			assert.Nil(t, err, v.desc)
		} else {
			assert.Equal(t, ErrHeader, err, v.desc)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h1 := header{policy: LFU, minWidth: 2, maxWidth: 11, alphabet: []byte("hello wrd")}

	var bw bitWriter
	buf := new(bytes.Buffer)
	bw.Init(buf)
	h1.write(&bw)
	bw.WritePads()

	var br bitReader
	br.Init(buf)
	var h2 header
	assert.Nil(t, h2.read(&br))
	assert.Equal(t, h1, h2)
}

func TestRunContext(t *testing.T) {
	ctx := newRunContext(&header{policy: Reset, minWidth: 2, maxWidth: 4, alphabet: []byte("ba")})
	assert.Equal(t, uint(2), ctx.numSyms)
	assert.Equal(t, uint(2), ctx.clear)
	assert.Equal(t, uint(3), ctx.base)
	assert.Equal(t, uint(16), ctx.maxCodes)
	assert.Equal(t, int32(0), ctx.symCodes['b'])
	assert.Equal(t, int32(1), ctx.symCodes['a'])
	assert.Equal(t, int32(-1), ctx.symCodes['c'])

	// A duplicated symbol on the decode side binds to its first code.
	ctx = newRunContext(&header{minWidth: 9, maxWidth: 9, alphabet: []byte("aba")})
	assert.Equal(t, int32(0), ctx.symCodes['a'])
	assert.Equal(t, int32(1), ctx.symCodes['b'])
}
