package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		name string
		word string
		want int
	}{
		{name: "empty word", word: "", want: 1},
		{name: "single letter", word: "a", want: 1},
		{name: "short word", word: "cat", want: 1},
		{name: "three letter word with two vowels", word: "ion", want: 1},
		{name: "two syllables", word: "doctor", want: 2},
		{name: "silent trailing e", word: "medicine", want: 3},
		{name: "vowel group counts once", word: "treatment", want: 2},
		{name: "uppercase input", word: "CLINICAL", want: 3},
		{name: "all consonants floor to one", word: "rhythm", want: 1},
		{name: "three characters with multibyte rune", word: "aña", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestCountSyllablesShortWordsAlwaysOne(t *testing.T) {
	for _, word := range []string{"", "I", "be", "the", "AEI", "xyz", "aña", "éon"} {
		assert.Equal(t, 1, CountSyllables(word), "word %q", word)
	}
}

func TestCalculateReadabilityBounds(t *testing.T) {
	assert.Zero(t, CalculateReadability(""))
	assert.Zero(t, CalculateReadability("   \n\t"))
	assert.Zero(t, CalculateReadability("..."))

	inputs := []string{
		"The cat sat on the mat.",
		"Etiological pathophysiological manifestations precipitate multifactorial comorbidities.",
		"One. Two! Three?",
		strings.Repeat("word ", 200) + ".",
	}
	for _, text := range inputs {
		score := CalculateReadability(text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestCalculateReadabilitySimpleBeatsJargon(t *testing.T) {
	simple := CalculateReadability("The cat sat on the mat.")
	jargon := CalculateReadability("Etiological pathophysiological manifestations precipitate multifactorial comorbidities.")
	assert.Greater(t, simple, jargon)
}

func TestExtractMedicalTerms(t *testing.T) {
	terms := ExtractMedicalTerms("The patient received medication for chronic hypertension")
	assert.Equal(t, []string{"patient", "medication", "chronic", "hypertension"}, terms)
}

func TestExtractMedicalTermsSubstringMatch(t *testing.T) {
	// "medication" must match through the "medic" entry, not a whole-word
	// comparison.
	terms := ExtractMedicalTerms("medication")
	require.Len(t, terms, 1)
	assert.Equal(t, "medication", terms[0])
}

func TestExtractMedicalTermsKeepsDuplicatesAndOrder(t *testing.T) {
	terms := ExtractMedicalTerms("treatment before surgery, treatment after surgery")
	assert.Equal(t, []string{"treatment", "surgery,", "treatment", "surgery"}, terms)
}

func TestExtractMedicalTermsNoMatches(t *testing.T) {
	assert.Empty(t, ExtractMedicalTerms("the weather is lovely today"))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only terminators", text: "..!?", want: []string{}},
		{
			name: "mixed terminators",
			text: "First one. Second one! Third one?",
			want: []string{"First one", "Second one", "Third one"},
		},
		{
			name: "trailing whitespace fragments dropped",
			text: "Hello.   . World.",
			want: []string{"Hello", "World"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}
