// Package util holds small helpers shared across chatmesh packages.
package util

import "strings"

// Humanize turns a function-style identifier into a display name:
// "relevance_guardrail" becomes "Relevance Guardrail".
func Humanize(identifier string) string {
	words := strings.FieldsFunc(identifier, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SnakeCase lowercases a display name and joins its words with underscores:
// "Promoselect Agent" becomes "promoselect_agent".
func SnakeCase(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
