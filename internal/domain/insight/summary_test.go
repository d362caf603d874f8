package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarySentences(t *testing.T, summary string) []string {
	t.Helper()
	require.True(t, strings.HasSuffix(summary, "."))
	return strings.Split(strings.TrimSuffix(summary, "."), ". ")
}

func TestSummarizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Summarize(""))
	assert.Equal(t, "", Summarize("   \n  "))
	assert.Equal(t, "", Summarize("..!?"))
}

func TestSummarizeReturnsInputSentences(t *testing.T) {
	text := "The patient presented with acute chest pain. " +
		"Vitals were taken at triage. " +
		"A diagnosis of unstable angina was made after clinical evaluation. " +
		"The family was notified. " +
		"Treatment with anticoagulant medication was started immediately."

	summary := Summarize(text)
	sentences := summarySentences(t, summary)
	require.LessOrEqual(t, len(sentences), 3)
	for _, sentence := range sentences {
		assert.Contains(t, text, sentence)
	}
}

func TestSummarizePrefersMedicalSentences(t *testing.T) {
	text := "The weather was nice. " +
		"The patient required surgery for a chronic infection and ongoing treatment. " +
		"Lunch was served at noon. " +
		"We went home."

	summary := Summarize(text)
	sentences := summarySentences(t, summary)
	require.NotEmpty(t, sentences)
	assert.Equal(t, "The patient required surgery for a chronic infection and ongoing treatment", sentences[0])
}

func TestSummarizeFewerThanThreeSentences(t *testing.T) {
	summary := Summarize("Only one sentence here")
	assert.Equal(t, "Only one sentence here.", summary)

	summary = Summarize("First sentence. Second sentence.")
	sentences := summarySentences(t, summary)
	assert.Len(t, sentences, 2)
}

func TestSummarizeTiesKeepInputOrder(t *testing.T) {
	// All four sentences score zero, so the first three should come out in
	// their original order.
	text := "Alpha one. Beta two. Gamma three. Delta four."
	summary := Summarize(text)
	assert.Equal(t, "Alpha one. Beta two. Gamma three.", summary)
}
