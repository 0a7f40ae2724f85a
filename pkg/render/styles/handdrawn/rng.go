package handdrawn

import (
	"encoding/binary"
	"hash/fnv"
)

// hash mixes a block ID with the style seed.
func hash(id string, seed uint64) uint64 {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	h.Write(b[:])
	h.Write([]byte(id))
	return h.Sum64()
}

// rng is a splitmix64 generator. It is tiny, allocation-free, and its
// output depends only on the seed.
type rng struct {
	state uint64
}

func newRNG(seed uint64) *rng {
	return &rng{state: seed}
}

// next returns a value in [0, 1).
func (r *rng) next() float64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}

// jitter returns a value in [-amount, amount).
func (r *rng) jitter(amount float64) float64 {
	return (r.next()*2 - 1) * amount
}
