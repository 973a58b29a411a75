// Package langdetect classifies text into the closed set of supported
// languages. Detection is deterministic and never fails: inconclusive
// input falls back to the default language.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// arabicRatioThreshold is the fraction of letters that must fall in the
// Arabic Unicode block for the Arabic rule to fire.
const arabicRatioThreshold = 0.3

// frenchScoreThreshold is the minimum stopword hit ratio for French.
// Below it the classifier is not confident and the default wins.
const frenchScoreThreshold = 0.12

// sampleRunes bounds how much text the detector inspects.
const sampleRunes = 1000

// frenchStopwords are high-frequency French function words that rarely
// occur in English text.
var frenchStopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {},
	"et": {}, "est": {}, "sont": {}, "avec": {}, "pour": {}, "dans": {},
	"sur": {}, "que": {}, "qui": {}, "pas": {}, "vous": {}, "nous": {},
	"comment": {}, "quoi": {}, "où": {}, "être": {}, "cette": {},
}

// Detect classifies text, in priority order: Arabic by script ratio,
// French by stopword score, default language otherwise.
func Detect(text string) domain.Language {
	sample := sampleText(text)
	if sample == "" {
		return domain.DefaultLanguage
	}

	if arabicRatio(sample) > arabicRatioThreshold {
		return domain.LanguageArabic
	}

	if frenchScore(sample) >= frenchScoreThreshold {
		return domain.LanguageFrench
	}

	return domain.DefaultLanguage
}

// sampleText lowercases and truncates the input to the inspection window.
func sampleText(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	runes := []rune(strings.ToLower(trimmed))
	if len(runes) > sampleRunes {
		runes = runes[:sampleRunes]
	}
	return string(runes)
}

// arabicRatio returns the fraction of letters in the Arabic block
// (U+0600..U+06FF). Non-letters are ignored so punctuation and digits
// do not dilute the signal.
func arabicRatio(sample string) float64 {
	var letters, arabic int
	for _, r := range sample {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r >= 0x0600 && r <= 0x06FF {
			arabic++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(arabic) / float64(letters)
}

// frenchScore returns the fraction of words that are French stopwords.
func frenchScore(sample string) float64 {
	words := strings.FieldsFunc(sample, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range words {
		if _, ok := frenchStopwords[strings.Trim(w, "'")]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}
