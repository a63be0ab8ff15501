package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// catalogLanguages covers the source language plus every active and retired
// target; detection outside this set is not useful for skipping provider calls.
var catalogLanguages = []lingua.Language{
	lingua.English,
	lingua.Chinese,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.German,
	lingua.French,
	lingua.Hindi,
	lingua.Russian,
	lingua.Italian,
}

// DetectISO6391 returns the two-letter code of the language the text is
// written in, or "" when the sample is too short or ambiguous.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(catalogLanguages...).
			WithMinimumRelativeDistance(0.25).
			Build()
	})
	return detector
}
