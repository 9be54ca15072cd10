// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// slotKind describes what inserting a new phrase into the codebook would do.
type slotKind int

const (
	slotNone  slotKind = iota // Insert is rejected or requires an epoch reset
	slotGrow                  // Insert consumes nextCode
	slotEvict                 // Insert reuses the code of an evicted phrase
)

// codebook is the bidirectional phrase-to-code table shared in structure by
// the encoder and the decoder. Codes below base are bound to the alphabet for
// the lifetime of the run; codes at or above base are mutable and governed by
// the eviction policy. The code width lives here as well since its growth is
// a pure function of the running code count.
type codebook struct {
	ctx      *runContext
	phrases  map[string]uint // Exact phrase -> code
	entries  map[uint]string // Code -> phrase
	nextCode uint
	width    uint

	// Policy trackers cover only the mutable codes (>= ctx.base).
	recency *simplelru.LRU[uint, struct{}]
	freqs   map[uint]int
}

func newCodebook(ctx *runContext) *codebook {
	cb := &codebook{ctx: ctx}
	switch ctx.policy {
	case LRU:
		// The tracker is used purely for recency ordering; it is sized so
		// that it can never evict on its own.
		cb.recency, _ = simplelru.NewLRU[uint, struct{}](int(ctx.maxCodes), nil)
	case LFU:
		cb.freqs = make(map[uint]int)
	}
	cb.reset()
	return cb
}

// reset wipes the table back to exactly the initial alphabet and restarts
// the epoch with the minimum code width.
func (cb *codebook) reset() {
	cb.phrases = make(map[string]uint, cb.ctx.numSyms)
	cb.entries = make(map[uint]string, cb.ctx.numSyms)
	for i, sym := range cb.ctx.alphabet {
		s := string([]byte{sym})
		if _, ok := cb.phrases[s]; !ok {
			cb.phrases[s] = uint(i)
		}
		cb.entries[uint(i)] = s
	}
	cb.nextCode = cb.ctx.base
	cb.width = cb.ctx.minWidth
	if cb.recency != nil {
		cb.recency.Purge()
	}
	if cb.freqs != nil {
		clear(cb.freqs)
	}
}

// lookup reports the code bound to an exact phrase.
func (cb *codebook) lookup(s string) (uint, bool) {
	code, ok := cb.phrases[s]
	return code, ok
}

// phrase reports the phrase bound to a code.
func (cb *codebook) phrase(code uint) (string, bool) {
	s, ok := cb.entries[code]
	return s, ok
}

// full reports whether nextCode has exhausted the code space.
func (cb *codebook) full() bool { return cb.nextCode == cb.ctx.maxCodes }

// touch records an access to code for the eviction trackers. Alphabet and
// reserved codes are immune to eviction and are never tracked.
func (cb *codebook) touch(code uint) {
	if code < cb.ctx.base {
		return
	}
	if cb.recency != nil {
		cb.recency.Add(code, struct{}{})
	}
	if cb.freqs != nil {
		cb.freqs[code]++
	}
}

// nextSlot reports where the next inserted phrase would land. slotNone with a
// Reset policy means the epoch must end at a CLEAR boundary; under any other
// policy it means the insert is simply rejected.
func (cb *codebook) nextSlot() (uint, slotKind) {
	if !cb.full() {
		return cb.nextCode, slotGrow
	}
	switch cb.ctx.policy {
	case LRU:
		if victim, _, ok := cb.recency.GetOldest(); ok {
			return victim, slotEvict
		}
	case LFU:
		if victim, ok := cb.leastFrequent(); ok {
			return victim, slotEvict
		}
	}
	return 0, slotNone
}

// leastFrequent selects the mutable code with the smallest access counter,
// breaking ties by the lowest code value.
func (cb *codebook) leastFrequent() (uint, bool) {
	var victim uint
	var best int
	found := false
	for code, n := range cb.freqs {
		if !found || n < best || (n == best && code < victim) {
			victim, best, found = code, n, true
		}
	}
	return victim, found
}

// insert binds phrase to the given slot, evicting the previous owner when the
// slot is reused, and marks the new entry as accessed once.
func (cb *codebook) insert(slot uint, kind slotKind, phrase string) {
	if kind == slotEvict {
		old := cb.entries[slot]
		delete(cb.phrases, old)
		if cb.recency != nil {
			cb.recency.Remove(slot)
		}
		if cb.freqs != nil {
			delete(cb.freqs, slot)
		}
	} else {
		cb.nextCode++
	}
	cb.phrases[phrase] = slot
	cb.entries[slot] = phrase
	cb.touch(slot)
}

// ensureWidth grows the code width until eff fits, never exceeding maxWidth.
// Both ends of the stream call this with the same effective code count before
// every code crosses the boundary, which keeps the width transitions aligned
// without any explicit signal.
func (cb *codebook) ensureWidth(eff uint) {
	for eff >= 1<<cb.width && cb.width < cb.ctx.maxWidth {
		cb.width++
	}
}
