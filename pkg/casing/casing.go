package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Casify turns an identifier such as "openDoor" or "sign_in" into a
// sentence-cased phrase: "Open door", "Sign in".
func Casify(identifier string) string {
	words := strings.Fields(strcase.ToDelimited(strings.TrimSpace(identifier), ' '))
	if len(words) == 0 {
		return ""
	}
	phrase := strings.Join(words, " ")

	first, size := utf8.DecodeRuneInString(phrase)
	return string(unicode.ToUpper(first)) + phrase[size:]
}
