package service

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerShuffler_IsPermutation(t *testing.T) {
	s := NewAnswerShuffler()

	tests := []struct {
		name      string
		correct   string
		incorrect []string
	}{
		{name: "multiple", correct: "Link", incorrect: []string{"Zelda", "Ganon", "Epona"}},
		{name: "boolean", correct: "True", incorrect: []string{"False"}},
		{name: "duplicates", correct: "A", incorrect: []string{"B", "B", "A"}},
		{name: "no incorrect", correct: "Only", incorrect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got := s.Shuffle(tt.correct, tt.incorrect)
				require.Len(t, got, len(tt.incorrect)+1)

				want := append([]string{tt.correct}, tt.incorrect...)
				sort.Strings(want)
				sorted := append([]string(nil), got...)
				sort.Strings(sorted)
				assert.Equal(t, want, sorted)
			}
		})
	}
}

func TestAnswerShuffler_DoesNotModifyInput(t *testing.T) {
	s := NewAnswerShuffler()
	incorrect := []string{"B", "C", "D"}

	for i := 0; i < 20; i++ {
		_ = s.Shuffle("A", incorrect)
	}
	assert.Equal(t, []string{"B", "C", "D"}, incorrect)
}

func TestAnswerShuffler_ProducesEveryOrder(t *testing.T) {
	s := NewAnswerShuffler()
	seen := make(map[string]int)

	for i := 0; i < 3000; i++ {
		seen[strings.Join(s.Shuffle("A", []string{"B", "C"}), "")]++
	}

	// 3! orders, each expected about 500 times.
	require.Len(t, seen, 6)
	for order, n := range seen {
		assert.Greater(t, n, 300, "order %s is underrepresented", order)
	}
}

func TestAnswerShuffler_UsesInjectedSource(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	s := &AnswerShuffler{shuffle: reverse}

	assert.Equal(t, []string{"A", "D", "C", "B"}, s.Shuffle("A", []string{"B", "C", "D"}))
}
