// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzw compresses or decompresses a stream between stdin and stdout.
//
// Example usage:
//	$ lzw -maxw 12 -policy lru < input > output.lzw
//	$ lzw -mode decode < output.lzw > input
//
// All options may also come from a YAML configuration file; explicit flags
// take precedence over it. Configuration problems exit with code 1 before any
// stream I/O begins; stream failures exit with code 2.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/lzw"
	"gopkg.in/yaml.v3"
)

type config struct {
	Mode     string `yaml:"mode"`      // encode or decode
	MinWidth int    `yaml:"min_width"` // Minimum code width in bits
	MaxWidth int    `yaml:"max_width"` // Maximum code width in bits
	Policy   string `yaml:"policy"`    // freeze, reset, lru or lfu
	Alphabet string `yaml:"alphabet"`  // Path of a text file fixing the symbol order
}

func main() {
	file := flag.String("config", "", "YAML configuration file, overridden by explicit flags")
	mode := flag.String("mode", "", "operating mode: encode or decode")
	minW := flag.Int("minw", 0, "minimum code width in bits [1,16]")
	maxW := flag.Int("maxw", 0, "maximum code width in bits [1,16]")
	policy := flag.String("policy", "", "eviction policy: freeze, reset, lru or lfu")
	alphabet := flag.String("alphabet", "", "path of a text file fixing the symbol order")
	flag.Parse()

	conf := config{Mode: "encode", MinWidth: 9, MaxWidth: 16, Policy: lzw.Freeze.String()}
	if *file != "" {
		if err := loadConfig(*file, &conf); err != nil {
			fatalConfig(err)
		}
	}
	if *mode != "" {
		conf.Mode = *mode
	}
	if *minW != 0 {
		conf.MinWidth = *minW
	}
	if *maxW != 0 {
		conf.MaxWidth = *maxW
	}
	if *policy != "" {
		conf.Policy = *policy
	}
	if *alphabet != "" {
		conf.Alphabet = *alphabet
	}

	switch conf.Mode {
	case "encode":
		encode(conf)
	case "decode":
		decode()
	default:
		fatalConfig(fmt.Errorf("unknown mode: %q", conf.Mode))
	}
}

func loadConfig(file string, conf *config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(conf)
}

func encode(conf config) {
	policy, err := lzw.ParsePolicy(conf.Policy)
	if err != nil {
		fatalConfig(fmt.Errorf("unknown policy: %q", conf.Policy))
	}
	syms, err := loadAlphabet(conf.Alphabet)
	if err != nil {
		fatalConfig(err)
	}

	zw, err := lzw.NewWriter(os.Stdout, &lzw.WriterConfig{
		MinWidth: conf.MinWidth,
		MaxWidth: conf.MaxWidth,
		Policy:   policy,
		Alphabet: syms,
	})
	if err != nil {
		fatalConfig(err)
	}
	if _, err := io.Copy(zw, os.Stdin); err != nil {
		fatalStream(err)
	}
	if err := zw.Close(); err != nil {
		fatalStream(err)
	}
}

func decode() {
	zr, err := lzw.NewReader(os.Stdin)
	if err != nil {
		fatalStream(err)
	}
	if _, err := io.Copy(os.Stdout, zr); err != nil {
		fatalStream(err)
	}
	if err := zr.Close(); err != nil {
		fatalStream(err)
	}
}

// loadAlphabet resolves the symbol order from the given text file, falling
// back to the plain 0-255 byte order when no file is configured.
func loadAlphabet(path string) ([]byte, error) {
	if path == "" {
		return lzw.ReadAlphabet(strings.NewReader(""))
	}
	return lzw.LoadAlphabet(path)
}

func fatalConfig(err error) {
	fmt.Fprintf(os.Stderr, "lzw: %v\n", err)
	os.Exit(1)
}

func fatalStream(err error) {
	fmt.Fprintf(os.Stderr, "lzw: %v\n", err)
	os.Exit(2)
}
