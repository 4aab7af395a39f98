package game

import (
	"math/rand"
	"time"
)

// Source is the randomness consumed by word selection and shuffling. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a time-seeded math/rand source.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly random permutation of word's runes (Fisher–Yates).
// Short or repetitive words can come back unchanged; callers accept that.
func Shuffle(rng Source, word string) string {
	letters := []rune(word)
	rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters)
}
