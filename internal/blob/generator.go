// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package blob generates the synthetic payloads uploaded during a run.
package blob

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

const KiB = 1024

// TextAlphabet is the character set text blobs are drawn from. Spaces are
// repeated so that they come up five times as often as any other character.
const TextAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" +
	"     "

// Kind tells how the content of a blob was produced.
type Kind int

const (
	Binary Kind = iota
	Text
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Blob struct {
	Data []byte
	Kind Kind
}

// SizeKB returns the payload size in KiB.
func (b Blob) SizeKB() float64 {
	return float64(len(b.Data)) / KiB
}

// Generator produces blobs whose size is uniformly distributed in
// [minKB*1024, maxKB*1024] bytes. It is not safe for concurrent use.
type Generator struct {
	minBytes int
	maxBytes int
	rnd      *rand.Rand
}

func NewGenerator(minKB, maxKB int, rnd *rand.Rand) (*Generator, error) {
	if minKB < 0 {
		return nil, fmt.Errorf("negative minimum blob size: %d KiB", minKB)
	}
	if maxKB < minKB {
		return nil, fmt.Errorf("maximum blob size %d KiB is below the minimum %d KiB", maxKB, minKB)
	}
	return &Generator{
		minBytes: minKB * KiB,
		maxBytes: maxKB * KiB,
		rnd:      rnd,
	}, nil
}

// NewSeededGenerator is NewGenerator with a PCG source seeded from seed.
func NewSeededGenerator(minKB, maxKB int, seed uint64) (*Generator, error) {
	return NewGenerator(minKB, maxKB, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate returns a new blob. Half of the blobs, on average, hold uniformly
// random bytes; the others hold text drawn from TextAlphabet.
func (g *Generator) Generate() Blob {
	size := g.minBytes + g.rnd.IntN(g.maxBytes-g.minBytes+1)
	if g.rnd.IntN(2) == 0 {
		return Blob{Data: g.randomBytes(size), Kind: Binary}
	}
	return Blob{Data: g.randomText(size), Kind: Text}
}

func (g *Generator) randomBytes(size int) []byte {
	data := make([]byte, size)
	var word [8]byte
	for i := 0; i < size; i += len(word) {
		binary.LittleEndian.PutUint64(word[:], g.rnd.Uint64())
		copy(data[i:], word[:])
	}
	return data
}

// randomText builds size characters from TextAlphabet. The alphabet is ASCII,
// so the UTF-8 encoding has exactly size bytes.
func (g *Generator) randomText(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = TextAlphabet[g.rnd.IntN(len(TextAlphabet))]
	}
	return data
}
