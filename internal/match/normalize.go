package match

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a record key for fuzzy comparison: CamelCase boundaries
// and separators (_ - space .) are dropped and the result is lower-cased.
// "serverHost", "server_host" and "Server-Host" all normalize to "serverhost".
func NormalizeKey(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// TokenizeKey splits a key into lower-case words at separators and CamelCase
// boundaries. "getHTTPResponse" yields ["get", "http", "response"].
func TokenizeKey(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether runes[i] begins a new CamelCase word.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID" splits before 'I'.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
