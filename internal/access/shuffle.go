package access

import "github.com/cespare/xxhash/v2"

// Source is the pseudo-random generator driving SeededOrderWith.
type Source interface {
	Uint64() uint64
}

// SplitMix64 is a small deterministic generator. Its output depends only on
// the seed, so orders stay stable across Go releases.
type SplitMix64 struct {
	state uint64
}

func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

func (s *SplitMix64) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// CombineIDs builds the seed material of a shuffle from the root item and
// the member viewing it. Anonymous viewers pass an empty actorID.
func CombineIDs(rootID, actorID string) string {
	return rootID + ":" + actorID
}

// NewSource seeds a SplitMix64 with the xxHash64 of material.
func NewSource(material string) Source {
	return NewSplitMix64(xxhash.Sum64String(material))
}

// SeededOrder returns a permutation of seq that only depends on seq and
// material. The last element never moves.
func SeededOrder[T any](seq []T, material string) []T {
	return SeededOrderWith(seq, NewSource(material))
}

// SeededOrderWith shuffles all but the last element of a copy of seq with a
// Fisher-Yates pass driven by src. seq itself is left untouched.
func SeededOrderWith[T any](seq []T, src Source) []T {
	if seq == nil {
		return nil
	}
	out := make([]T, len(seq))
	copy(out, seq)
	if len(out) < 3 {
		return out
	}
	for i := len(out) - 2; i > 0; i-- {
		j := int(src.Uint64() % uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
