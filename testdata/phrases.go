// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Generates phrases.bin. This test file heavily favors adaptive dictionary
// compression since a large bulk of its data is exact re-occurrences of
// phrases seen before, drawn from a slowly drifting pool. Phrase reuse decays
// over time so that eviction policies have stale entries to reclaim.
package main

import "math/rand"
import "os"

const (
	name = "phrases.bin"
	size = 1 << 18
)

func main() {
	var b []byte
	var r = rand.New(rand.NewSource(0))

	randPhrase := func() []byte {
		p := make([]byte, 2+r.Int()%30)
		for i := range p {
			p[i] = byte('a' + r.Int()%26)
		}
		return p
	}

	// Start with a pool of phrases and slowly churn it: most writes replay a
	// pooled phrase, some introduce a fresh one, and fresh phrases displace
	// the oldest pool entries over time.
	pool := make([][]byte, 64)
	for i := range pool {
		pool[i] = randPhrase()
	}

	for len(b) < size {
		p := r.Float32()
		switch {
		case p <= 0.05:
			// Raw noise that matches nothing.
			for i := 0; i < 8+r.Int()%24; i++ {
				b = append(b, byte(r.Int()))
			}
		case p <= 0.15:
			// A fresh phrase displacing the oldest pool entry.
			phrase := randPhrase()
			copy(pool, pool[1:])
			pool[len(pool)-1] = phrase
			b = append(b, phrase...)
		default:
			// Replay a pooled phrase, biased towards recent entries.
			i := len(pool) - 1 - r.Int()%(1+r.Int()%len(pool))
			b = append(b, pool[i]...)
		}
	}

	if err := os.WriteFile(name, b[:size], 0664); err != nil {
		panic(err)
	}
}
