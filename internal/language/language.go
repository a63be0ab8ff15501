package language

import (
	"sort"
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Source is the language catalog content is authored in.
const Source = "en"

type Option struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}

type label struct {
	english string
	native  string
}

var activeTargets = map[string]label{
	"zh": {english: "Chinese", native: "中文"},
	"es": {english: "Spanish", native: "Español"},
	"pt": {english: "Portuguese", native: "Português"},
}

// Deprecated targets are no longer served; their durable files are removed by
// the cleanup command.
var deprecatedTargets = map[string]label{
	"de": {english: "German", native: "Deutsch"},
	"fr": {english: "French", native: "Français"},
	"hi": {english: "Hindi", native: "हिन्दी"},
	"ru": {english: "Russian", native: "Русский"},
	"it": {english: "Italian", native: "Italiano"},
}

// Targets lists active target language codes in a stable order.
func Targets() []string {
	codes := make([]string, 0, len(activeTargets))
	for code := range activeTargets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Deprecated lists retired target language codes in a stable order.
func Deprecated() []string {
	codes := make([]string, 0, len(deprecatedTargets))
	for code := range deprecatedTargets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsTarget reports whether code is an active target language.
func IsTarget(code string) bool {
	_, ok := activeTargets[code]
	return ok
}

// IsSource reports whether raw names the source language or one of its
// regional aliases (en-US, en_GB, ...).
func IsSource(raw string) bool {
	return Base(raw) == Source
}

// Base reduces a language tag to its ISO 639-1 base code. Tags that do not
// parse fall back to the primary subtag of the normalized input.
func Base(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	parsed, err := xlanguage.Parse(tag)
	if err != nil {
		return NormalizeCode(tag)
	}
	base, _ := parsed.Base()
	code := strings.ToLower(base.String())
	if code == "" || code == "und" {
		return NormalizeCode(tag)
	}
	return code
}

// Resolve maps a request language parameter to a served language code. Blank,
// unknown and deprecated values resolve to the source language so a typo in a
// query parameter degrades to source text instead of an error.
func Resolve(raw string) string {
	code := Base(raw)
	if IsTarget(code) {
		return code
	}
	return Source
}

// EnglishName returns the English display name for a language code, falling
// back to the code itself.
func EnglishName(code string) string {
	base := Base(code)
	if base == Source {
		return "English"
	}
	if l, ok := activeTargets[base]; ok {
		return l.english
	}
	if l, ok := deprecatedTargets[base]; ok {
		return l.english
	}
	return strings.TrimSpace(code)
}

// NativeName returns the endonym for a language code, falling back to the
// English name.
func NativeName(code string) string {
	base := Base(code)
	if l, ok := activeTargets[base]; ok {
		return l.native
	}
	if l, ok := deprecatedTargets[base]; ok {
		return l.native
	}
	return EnglishName(code)
}

// Options lists the source language followed by active targets.
func Options() []Option {
	options := []Option{{Code: Source, Label: "English", Native: "English"}}
	for _, code := range Targets() {
		l := activeTargets[code]
		options = append(options, Option{Code: code, Label: l.english, Native: l.native})
	}
	return options
}

// NormalizeTag lowercases a language tag and joins its subtags with "-".
// Returns an empty string when the value is blank or contains non-letters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for _, part := range parts {
		for _, r := range part {
			if r < 'a' || r > 'z' {
				return ""
			}
		}
	}
	return strings.Join(parts, "-")
}

// NormalizeCode returns the primary subtag of a tag ("en" from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		return tag[:dash]
	}
	return tag
}
