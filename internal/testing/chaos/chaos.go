// Package chaos corrupts valid inputs to exercise parser error paths.
//
// The corruptors feed the manifest, rename-plan and configuration
// parsers with mangled bytes to verify they return errors instead of
// panicking. Corruptions never touch the caller's slice.
package chaos

import (
	"math/rand"
)

// Corruptor produces corrupted variants of an input.
type Corruptor struct {
	rng *rand.Rand
}

// New creates a Corruptor with a deterministic seed, so failing inputs
// can be reproduced.
func New(seed int64) *Corruptor {
	return &Corruptor{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Corrupt applies one randomly chosen mutation to the input.
func (c *Corruptor) Corrupt(input []byte) []byte {
	if len(input) == 0 {
		return c.randomBytes()
	}

	mutations := []func([]byte) []byte{
		c.FlipBits,
		c.DeleteByte,
		c.InsertByte,
		c.ReplaceByte,
		c.Truncate,
		c.BreakUTF8,
	}
	return mutations[c.rng.Intn(len(mutations))](input)
}

// CorruptN applies n random mutations in sequence.
func (c *Corruptor) CorruptN(input []byte, n int) []byte {
	result := clone(input)
	for i := 0; i < n; i++ {
		result = c.Corrupt(result)
	}
	return result
}

// Corpus builds count corrupted variants of a valid input, with varying
// corruption intensity.
func (c *Corruptor) Corpus(valid []byte, count int) [][]byte {
	corpus := make([][]byte, count)
	for i := range corpus {
		intensity := c.rng.Intn(5) + 1
		corpus[i] = c.CorruptN(valid, intensity)
	}
	return corpus
}

// FlipBits inverts one to three randomly chosen bits.
func (c *Corruptor) FlipBits(input []byte) []byte {
	result := clone(input)
	if len(result) == 0 {
		return result
	}

	n := c.rng.Intn(3) + 1
	for i := 0; i < n; i++ {
		idx := c.rng.Intn(len(result))
		result[idx] ^= byte(1 << c.rng.Intn(8))
	}
	return result
}

// DeleteByte removes one randomly chosen byte.
func (c *Corruptor) DeleteByte(input []byte) []byte {
	if len(input) <= 1 {
		return clone(input)
	}

	idx := c.rng.Intn(len(input))
	result := make([]byte, 0, len(input)-1)
	result = append(result, input[:idx]...)
	return append(result, input[idx+1:]...)
}

// InsertByte inserts one random byte at a random position.
func (c *Corruptor) InsertByte(input []byte) []byte {
	idx := c.rng.Intn(len(input) + 1)
	result := make([]byte, 0, len(input)+1)
	result = append(result, input[:idx]...)
	result = append(result, byte(c.rng.Intn(256)))
	return append(result, input[idx:]...)
}

// ReplaceByte overwrites one randomly chosen byte with a random value.
func (c *Corruptor) ReplaceByte(input []byte) []byte {
	result := clone(input)
	if len(result) == 0 {
		return result
	}

	result[c.rng.Intn(len(result))] = byte(c.rng.Intn(256))
	return result
}

// Truncate cuts the input at a random position, keeping at least one byte.
func (c *Corruptor) Truncate(input []byte) []byte {
	if len(input) <= 1 {
		return clone(input)
	}

	pos := c.rng.Intn(len(input)-1) + 1
	return clone(input[:pos])
}

// BreakUTF8 plants an orphan continuation byte inside the input.
// Manifest names carry multi-byte CJK sequences, so decoders see
// sequences cut in half.
func (c *Corruptor) BreakUTF8(input []byte) []byte {
	result := clone(input)
	if len(result) == 0 {
		return result
	}

	idx := c.rng.Intn(len(result))
	result[idx] = 0x80 | byte(c.rng.Intn(0x40))
	return result
}

func (c *Corruptor) randomBytes() []byte {
	n := c.rng.Intn(10) + 1
	result := make([]byte, n)
	c.rng.Read(result)
	return result
}

func clone(input []byte) []byte {
	result := make([]byte, len(input))
	copy(result, input)
	return result
}
