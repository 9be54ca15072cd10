// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"
	"os"
)

// ReadAlphabet derives an encoding alphabet from a text source: the first
// byte of every non-empty line, in order of first appearance, followed by the
// remainder of the full 0-255 byte range. The fallback guarantees that any
// binary input is representable and that independent invocations built from
// the same source always agree on the alphabet size.
func ReadAlphabet(rd io.Reader) ([]byte, error) {
	var seen [256]bool
	alphabet := make([]byte, 0, 256)

	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if c := line[0]; !seen[c] {
			seen[c] = true
			alphabet = append(alphabet, c)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for i := 0; i < 256; i++ {
		if !seen[byte(i)] {
			alphabet = append(alphabet, byte(i))
		}
	}
	return alphabet, nil
}

// LoadAlphabet reads an alphabet from the text file at path.
func LoadAlphabet(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAlphabet(f)
}
