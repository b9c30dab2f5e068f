package domain

import "strings"

var (
	affirmativeTokens = []string{"si", "sí", "yes", "confirmar"}
	negativeTokens    = []string{"no", "cancelar", "cancel"}
)

// IsAffirmative reports whether the utterance confirms a pending action.
// Matching is case-insensitive on whole words with punctuation stripped, so
// "Sí, adelante" confirms but "siguiente" does not.
func IsAffirmative(utterance string) bool {
	return containsAnyWord(utterance, affirmativeTokens)
}

// IsNegative reports whether the utterance cancels a pending action.
func IsNegative(utterance string) bool {
	return containsAnyWord(utterance, negativeTokens)
}

func containsAnyWord(utterance string, tokens []string) bool {
	for _, word := range strings.Fields(strings.ToLower(utterance)) {
		word = strings.Trim(word, ".,;:!?¡¿\"'()")
		for _, token := range tokens {
			if word == token {
				return true
			}
		}
	}
	return false
}
