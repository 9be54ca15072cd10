// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "bytes"
import "io"
import "strings"
import "testing"

import "github.com/dsnet/lzw/internal/testutil"
import "github.com/stretchr/testify/assert"

// Helper test function that converts any empty byte slice to the nil slice so
// that equality checks work out fine.
func nb(buf []byte) []byte {
	if len(buf) == 0 {
		return nil
	}
	return buf
}

// fullAlphabet is the plain 0-255 alphabet that ReadAlphabet yields for an
// empty source.
func fullAlphabet(t testing.TB) []byte {
	alphabet, err := ReadAlphabet(strings.NewReader(""))
	assert.Nil(t, err)
	assert.Equal(t, 256, len(alphabet))
	return alphabet
}

func encode(t *testing.T, conf *WriterConfig, input []byte) []byte {
	buf := new(bytes.Buffer)
	zw, err := NewWriter(buf, conf)
	assert.Nil(t, err)
	cnt, err := zw.Write(input)
	assert.Equal(t, len(input), cnt)
	assert.Nil(t, err)
	assert.Nil(t, zw.Close())
	assert.Equal(t, int64(len(input)), zw.InputCount())
	assert.Equal(t, int64(buf.Len()), zw.WriteCount())
	return buf.Bytes()
}

func decode(t *testing.T, data []byte) ([]byte, error) {
	zr, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	output, err := io.ReadAll(zr)
	if err == io.EOF {
		err = nil
	}
	return output, err
}

func TestInterfaces(t *testing.T) {
	assert.Implements(t, (*io.WriteCloser)(nil), new(Writer))
	assert.Implements(t, (*io.ReadCloser)(nil), new(Reader))
}

func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(0)
	abc := make([]byte, 512)
	for i := range abc {
		abc[i] = "abc"[rand.Intn(3)]
	}
	abc[len(abc)-1] = 'b'

	inputs := map[string][]byte{
		"empty":   nil,
		"single":  []byte("a"),
		"run":     bytes.Repeat([]byte("a"), 1000),
		"cycle":   bytes.Repeat([]byte("abc"), 400),
		"text":    bytes.Repeat([]byte("the quick brown fox jumped over the lazy dog. "), 40),
		"random":  rand.Bytes(4096),
		"resized": testutil.ResizeData([]byte("some seed phrase"), 8192),
		"abc":     abc,
	}

	full := fullAlphabet(t)
	small := []byte("abc")
	confs := []WriterConfig{
		{MinWidth: 9, MaxWidth: 9, Alphabet: full},
		{MinWidth: 9, MaxWidth: 16, Alphabet: full},
		{MinWidth: 2, MaxWidth: 12, Alphabet: full},
		{MinWidth: 9, MaxWidth: 10, Alphabet: full},
		{MinWidth: 2, MaxWidth: 3, Alphabet: small},
		{MinWidth: 3, MaxWidth: 5, Alphabet: small},
	}

	for _, conf := range confs {
		for _, policy := range []Policy{Freeze, Reset, LRU, LFU} {
			conf := conf
			conf.Policy = policy
			for name, input := range inputs {
				if len(conf.Alphabet) < 256 && name != "empty" && name != "abc" {
					continue // Input not representable in the small alphabet
				}
				data := encode(t, &conf, input)
				output, err := decode(t, data)
				assert.Nil(t, err, "%s/%v/minW=%d/maxW=%d", name, policy, conf.MinWidth, conf.MaxWidth)
				assert.Equal(t, nb(input), nb(output), "%s/%v/minW=%d/maxW=%d", name, policy, conf.MinWidth, conf.MaxWidth)
			}
		}
	}
}

// Encoding identical input under an identical configuration must yield a
// byte-identical stream, headers included.
func TestDeterminism(t *testing.T) {
	input := testutil.ResizeData([]byte("determinism determinism"), 4096)
	for _, policy := range []Policy{Freeze, Reset, LRU, LFU} {
		conf := &WriterConfig{MinWidth: 9, MaxWidth: 10, Policy: policy, Alphabet: fullAlphabet(t)}
		data1 := encode(t, conf, input)
		data2 := encode(t, conf, input)
		assert.Equal(t, data1, data2)
	}
}

// Once the table reaches capacity under Freeze, no further phrase insertion
// occurs, the width stays pinned, and the output still round-trips.
func TestFreezeSaturation(t *testing.T) {
	conf := &WriterConfig{MinWidth: 2, MaxWidth: 4, Policy: Freeze, Alphabet: []byte("ab")}
	input := bytes.Repeat([]byte("abbababbbaabab"), 100)

	buf := new(bytes.Buffer)
	zw, err := NewWriter(buf, conf)
	assert.Nil(t, err)
	lastWidth := zw.cb.width
	for _, c := range input {
		_, err := zw.Write([]byte{c})
		assert.Nil(t, err)
		assert.True(t, zw.cb.nextCode <= zw.ctx.maxCodes)
		assert.True(t, zw.cb.width >= uint(conf.MinWidth) && zw.cb.width <= uint(conf.MaxWidth))
		assert.True(t, zw.cb.width >= lastWidth) // Single epoch, never shrinks
		lastWidth = zw.cb.width
	}
	assert.Nil(t, zw.Close())
	assert.True(t, zw.cb.full())
	assert.Equal(t, int(zw.ctx.maxCodes)-1, len(zw.cb.entries)) // CLEAR holds no phrase

	output, err := decode(t, buf.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, input, output)
}

// Under Reset, the table must wipe back to exactly the initial alphabet the
// moment it fills, and the stream must still round-trip across the epochs.
func TestResetBoundary(t *testing.T) {
	conf := &WriterConfig{MinWidth: 2, MaxWidth: 4, Policy: Reset, Alphabet: []byte("ab")}
	input := bytes.Repeat([]byte("abbababbbaababbbba"), 100)

	buf := new(bytes.Buffer)
	zw, err := NewWriter(buf, conf)
	assert.Nil(t, err)
	resets := 0
	last := zw.cb.nextCode
	for _, c := range input {
		_, err := zw.Write([]byte{c})
		assert.Nil(t, err)
		if zw.cb.nextCode < last {
			// The epoch just ended: the table must hold exactly the initial
			// alphabet again and the width must be back at the minimum.
			resets++
			assert.Equal(t, zw.ctx.base, zw.cb.nextCode)
			assert.Equal(t, uint(conf.MinWidth), zw.cb.width)
			assert.Equal(t, int(zw.ctx.numSyms), len(zw.cb.entries))
		}
		last = zw.cb.nextCode
	}
	assert.Nil(t, zw.Close())
	assert.True(t, resets > 0)

	output, err := decode(t, buf.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, input, output)
}

// An evicted phrase that shows up again must be relearned under a fresh code
// rather than aliasing its stale one.
func TestEvictionChurn(t *testing.T) {
	for _, policy := range []Policy{LRU, LFU} {
		conf := &WriterConfig{MinWidth: 2, MaxWidth: 3, Policy: policy, Alphabet: []byte("ab")}
		input := bytes.Repeat([]byte("aabbabababbbaaabab"), 200)

		buf := new(bytes.Buffer)
		zw, err := NewWriter(buf, conf)
		assert.Nil(t, err)
		relearned := false
		codes := map[string]uint{}
		for _, c := range input {
			_, err := zw.Write([]byte{c})
			assert.Nil(t, err)
			for phrase, code := range zw.cb.phrases {
				if old, ok := codes[phrase]; ok && old != code {
					relearned = true
				}
				codes[phrase] = code
			}
		}
		assert.Nil(t, zw.Close())
		assert.True(t, zw.cb.full())
		assert.True(t, relearned, "%v", policy)

		output, err := decode(t, buf.Bytes())
		assert.Nil(t, err, "%v", policy)
		assert.Equal(t, input, output, "%v", policy)
	}
}

// Scenario: alphabet {a, b} plus the full byte range, fixed 9-bit width,
// Freeze policy, input "aaaaaa". The code stream must be exactly the symbol
// code for "a" followed twice by the first phrase code.
func TestScenarioFixedWidth(t *testing.T) {
	alphabet, err := ReadAlphabet(strings.NewReader("alpha\nbeta\n"))
	assert.Nil(t, err)
	assert.Equal(t, 256, len(alphabet))
	assert.Equal(t, byte('a'), alphabet[0])
	assert.Equal(t, byte('b'), alphabet[1])

	conf := &WriterConfig{MinWidth: 9, MaxWidth: 9, Policy: Freeze, Alphabet: alphabet}
	data := encode(t, conf, []byte("aaaaaa"))

	var br bitReader
	br.Init(bytes.NewReader(data))
	var h header
	assert.Nil(t, h.read(&br))
	var codes []uint
	for {
		code, err := br.ReadBits(9)
		if err == io.EOF {
			break
		}
		assert.Nil(t, err)
		codes = append(codes, code)
	}
	assert.Equal(t, []uint{0, 257, 257}, codes) // "a", "aa", "aaa"

	output, err := decode(t, data)
	assert.Nil(t, err)
	assert.Equal(t, []byte("aaaaaa"), output)
}

// Scenario: empty input yields a header-only stream that decodes to nothing.
func TestScenarioEmptyInput(t *testing.T) {
	conf := &WriterConfig{MinWidth: 9, MaxWidth: 16, Policy: Reset, Alphabet: fullAlphabet(t)}
	data := encode(t, conf, nil)
	assert.Equal(t, 3+256+1, len(data)) // 28 header bits, 256 symbols, 4 pad bits

	output, err := decode(t, data)
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), nb(output))
}

func BenchmarkWriter(b *testing.B) {
	data := testutil.ResizeData([]byte("the quick brown fox jumped over the lazy dog. "), 1<<16)
	conf := &WriterConfig{MinWidth: 9, MaxWidth: 14, Policy: LRU, Alphabet: fullAlphabet(b)}
	zw, err := NewWriter(io.Discard, conf)
	if err != nil {
		b.Fatalf("unexpected error: NewWriter() = %v", err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		zw.Reset(io.Discard, conf)
		zw.Write(data)
		zw.Close()
	}
}

func BenchmarkReader(b *testing.B) {
	data := testutil.ResizeData([]byte("the quick brown fox jumped over the lazy dog. "), 1<<16)
	conf := &WriterConfig{MinWidth: 9, MaxWidth: 14, Policy: LRU, Alphabet: fullAlphabet(b)}

	bb := new(bytes.Buffer)
	zw, _ := NewWriter(bb, conf)
	zw.Write(data)
	zw.Close()

	zr := new(Reader)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := zr.Reset(bytes.NewReader(bb.Bytes())); err != nil {
			b.Fatalf("unexpected error: Reset() = %v", err)
		}
		cnt, err := io.Copy(io.Discard, zr)
		if cnt != int64(len(data)) {
			b.Fatalf("mismatching count: Copy() = %d, want %d", cnt, len(data))
		}
		if err != nil {
			b.Fatalf("unexpected error: Copy() = %v", err)
		}
		if err := zr.Close(); err != nil {
			b.Fatalf("unexpected error: Close() = %v", err)
		}
	}
}

// Scenario: a CLEAR code appears in the stream exactly where the encoder's
// table filled, and decoding reproduces the input across the reset.
func TestScenarioClearCode(t *testing.T) {
	conf := &WriterConfig{MinWidth: 2, MaxWidth: 2, Policy: Reset, Alphabet: []byte("a")}
	input := []byte("aaaaaaa")
	data := encode(t, conf, input)

	var br bitReader
	br.Init(bytes.NewReader(data))
	var h header
	assert.Nil(t, h.read(&br))
	var codes []uint
	for {
		code, err := br.ReadBits(2)
		if err == io.EOF {
			break
		}
		assert.Nil(t, err)
		codes = append(codes, code)
	}
	// "a", "aa", "aaa" fill the table, then CLEAR, then the final "a".
	assert.Equal(t, []uint{0, 2, 3, 1, 0}, codes)

	output, err := decode(t, data)
	assert.Nil(t, err)
	assert.Equal(t, input, output)
}
