package service

import (
	"math/rand"
)

// AnswerShuffler builds the display order of a question's answers.
type AnswerShuffler struct {
	shuffle func(n int, swap func(i, j int))
}

// NewAnswerShuffler creates a shuffler backed by the global random source.
func NewAnswerShuffler() *AnswerShuffler {
	return &AnswerShuffler{shuffle: rand.Shuffle}
}

// Shuffle returns the correct answer and every incorrect answer in random order.
// Equal strings are kept as separate entries and the inputs are not modified.
func (s *AnswerShuffler) Shuffle(correct string, incorrect []string) []string {
	options := make([]string, 0, 1+len(incorrect))
	options = append(options, incorrect...)
	options = append(options, correct)

	s.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
