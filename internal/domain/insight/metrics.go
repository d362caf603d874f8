package insight

import (
	"strings"
	"unicode/utf8"
)

// CountSyllables estimates the syllable count of a single word by counting
// vowel-group transitions. Words of three characters or fewer count as one
// syllable; a trailing "e" is treated as silent. Never returns less than 1.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	// Characters, not bytes: "café" is four characters.
	if utf8.RuneCountInString(word) <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// CalculateReadability scores text on a 0-100 ease-of-reading scale using
// the Flesch formula over average sentence length and average syllables per
// word. Returns 0 for text with no sentences or no words.
func CalculateReadability(text string) float64 {
	sentences := SplitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	totalSyllables := 0
	for _, word := range words {
		totalSyllables += CountSyllables(word)
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(totalSyllables) / float64(len(words))

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ExtractMedicalTerms returns every whitespace-delimited word of the text
// that contains a medical keyword, duplicates included, in original order.
func ExtractMedicalTerms(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0)
	for _, word := range words {
		if containsAny(word, medicalKeywords) {
			terms = append(terms, word)
		}
	}
	return terms
}

// SplitSentences splits text into sentences on '.', '!' and '?' and drops
// empty or whitespace-only fragments.
func SplitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" {
			sentences = append(sentences, fragment)
		}
	}
	return sentences
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
