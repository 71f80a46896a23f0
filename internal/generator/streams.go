package generator

import "math/rand/v2"

// PCG stream selectors. Both streams share the caller's seed as state and
// differ only by increment, so they never overlap.
const (
	generalStream    uint64 = 0x9e3779b97f4a7c15
	continuousStream uint64 = 0xda3e39cb94b95bdb
)

// Streams are the two pseudorandom sources owned by a single Generate call.
// General serves uniform integers and coin flips (signup and activity day
// offsets, the missing-satisfaction coin); Continuous serves every
// distribution draw and categorical choice.
type Streams struct {
	General    *rand.Rand
	Continuous *rand.Rand
}

// NewStreams seeds both streams from seed.
func NewStreams(seed int64) *Streams {
	return &Streams{
		General:    rand.New(rand.NewPCG(uint64(seed), generalStream)),
		Continuous: rand.New(rand.NewPCG(uint64(seed), continuousStream)),
	}
}
