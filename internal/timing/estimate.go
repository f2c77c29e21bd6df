// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timing

import (
	"sort"
	"strings"
)

const (
	// minSyllablesPerSec floors the speaking rate the word heuristic assumes.
	minSyllablesPerSec = 3.5

	// minWordMs floors any single word's estimated duration.
	minWordMs = 150
)

// distribute splits total across len(weights) slots proportionally to the
// raw weights, with the slot durations summing to total exactly. Fractional
// remainders go to the largest-remainder slots (ties break by index), so the
// result is deterministic. A zero weight sum degrades to an even split.
//
// This is the one proportional-allotment helper reused at the scene,
// sentence, and word levels (prd014-timing R3.1).
func distribute(weights []float64, total int64) []int64 {
	n := len(weights)
	if n == 0 {
		return nil
	}

	sum := 0.0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		even := make([]float64, n)
		for i := range even {
			even[i] = 1
		}
		return distribute(even, total)
	}

	shares := make([]int64, n)
	remainders := make([]float64, n)
	var allotted int64
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		exact := w / sum * float64(total)
		shares[i] = int64(exact)
		remainders[i] = exact - float64(shares[i])
		allotted += shares[i]
	}

	// Hand the leftover milliseconds to the largest remainders.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for i := int64(0); i < total-allotted; i++ {
		shares[order[i%int64(n)]]++
	}

	return shares
}

// estimateWordMs estimates one word's spoken duration from its syllable
// count at the floor speaking rate, never below minWordMs. The heuristic is
// only locally accurate; callers rescale word sums to the sentence
// allotment (R3.4).
func estimateWordMs(word string) int64 {
	ms := int64(float64(countSyllables(word)) / minSyllablesPerSec * 1000)
	if ms < minWordMs {
		ms = minWordMs
	}
	return ms
}

// countSyllables approximates syllables by counting vowel groups with a
// silent-trailing-"e" correction. Never returns less than 1.
func countSyllables(word string) int {
	var letters []rune
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range letters {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Trailing silent "e": "table" keeps its final group ("le"), "phrase"
	// does not.
	n := len(letters)
	if count > 1 && letters[n-1] == 'e' && !isVowel(letters[n-2]) && letters[n-2] != 'l' {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
