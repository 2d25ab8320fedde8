// Package randsrc provides the seeded random source every generator run owns.
// Nothing in here touches process-global random state, so two sources built
// from the same seed produce the same draws in the same order.
package randsrc

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// gofakeit treats seed 0 as "pick a random seed", so 0 is remapped.
const zeroSeed uint64 = 0x9e3779b97f4a7c15

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type Source struct {
	fake *gofakeit.Faker
}

func New(seed int64) *Source {
	s := uint64(seed)
	if s == 0 {
		s = zeroSeed
	}
	return &Source{fake: gofakeit.New(s)}
}

// Faker exposes the underlying faker. Its draws advance the same stream as
// every other method on s.
func (s *Source) Faker() *gofakeit.Faker {
	return s.fake
}

// IntRange returns a uniform integer in [min, max].
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return s.fake.IntRange(min, max)
}

// Intn returns a uniform integer in [0, n).
func (s *Source) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.fake.IntRange(0, n-1)
}

// Float64Range returns a uniform float in [min, max].
func (s *Source) Float64Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return s.fake.Float64Range(min, max)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.fake.Float64() < p
}

// Between returns an instant uniformly drawn, to the second, in [start, end].
func (s *Source) Between(start, end time.Time) time.Time {
	span := int(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(s.IntRange(0, span)) * time.Second)
}

// Code returns k characters drawn with replacement from A-Z0-9.
func (s *Source) Code(k int) string {
	var b strings.Builder
	b.Grow(k)
	for i := 0; i < k; i++ {
		b.WriteByte(codeAlphabet[s.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// Pick returns one element chosen uniformly. items must not be empty.
func Pick[T any](s *Source, items []T) T {
	return items[s.Intn(len(items))]
}

// Sample draws k distinct elements without replacement, in draw order.
// k is clamped to len(items).
func Sample[T any](s *Source, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	out := make([]T, 0, k)
	for i := 0; i < k; i++ {
		j := s.IntRange(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}

// Choices draws k elements independently, with replacement.
func Choices[T any](s *Source, items []T, k int) []T {
	out := make([]T, 0, k)
	if len(items) == 0 {
		return out
	}
	for i := 0; i < k; i++ {
		out = append(out, Pick(s, items))
	}
	return out
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](s *Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.IntRange(0, i)
		items[i], items[j] = items[j], items[i]
	}
}
