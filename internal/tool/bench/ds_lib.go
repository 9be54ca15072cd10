// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/lzw"
)

func init() {
	// The compression level selects the widest code: level 1 keeps the code
	// space at 9 bits while level 9 allows the full 16 bits.
	RegisterEncoder(FormatLZW, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			maxWidth := 8 + lvl
			if maxWidth < 9 {
				maxWidth = 9
			}
			if maxWidth > 16 {
				maxWidth = 16
			}
			zw, err := lzw.NewWriter(w, &lzw.WriterConfig{
				MinWidth: 9,
				MaxWidth: maxWidth,
				Policy:   lzw.LRU,
				Alphabet: byteAlphabet(),
			})
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatLZW, "ds",
		func(r io.Reader) io.ReadCloser {
			zr, err := lzw.NewReader(r)
			if err != nil {
				panic(err)
			}
			return zr
		})
}

func byteAlphabet() []byte {
	alphabet := make([]byte, 256)
	for i := range alphabet {
		alphabet[i] = byte(i)
	}
	return alphabet
}
