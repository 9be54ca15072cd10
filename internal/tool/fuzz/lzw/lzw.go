// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

package lzw

import (
	"bytes"
	"io"

	"github.com/dsnet/lzw"
)

func Fuzz(data []byte) int {
	output, ok := decodeStream(data)
	if ok {
		testRoundTrip(output)
		return 1
	} else {
		testRoundTrip(data)
		return 0
	}
}

// decodeStream attempts to decode the input as a complete code stream.
func decodeStream(data []byte) ([]byte, bool) {
	zr, err := lzw.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	b, err := io.ReadAll(zr)
	return b, err == nil
}

// testRoundTrip compresses the input under every eviction policy and then
// decompresses it, checking that the data was losslessly preserved.
func testRoundTrip(want []byte) {
	alphabet := make([]byte, 256)
	for i := range alphabet {
		alphabet[i] = byte(i)
	}

	for _, policy := range []lzw.Policy{lzw.Freeze, lzw.Reset, lzw.LRU, lzw.LFU} {
		bb := new(bytes.Buffer)
		zw, err := lzw.NewWriter(bb, &lzw.WriterConfig{
			MinWidth: 9,
			MaxWidth: 12,
			Policy:   policy,
			Alphabet: alphabet,
		})
		if err != nil {
			panic(err)
		}
		n, err := zw.Write(want)
		if n != len(want) || err != nil {
			panic(err)
		}
		if err := zw.Close(); err != nil {
			panic(err)
		}

		got, ok := decodeStream(bb.Bytes())
		if !bytes.Equal(got, want) || !ok {
			panic("mismatching bytes")
		}
	}
}
