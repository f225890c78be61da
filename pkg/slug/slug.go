// Package slug genera identificadores seguros para nombres de archivo a
// partir de texto libre (nombres de imagen subidos por el admin).
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make convierte el texto a un slug ASCII en minúsculas: quita diacríticos,
// reemplaza separadores por guiones y descarta el resto de caracteres.
// Devuelve "file" si no queda ningún carácter utilizable.
func Make(s string) string {
	// Descomponer y eliminar marcas diacríticas (é -> e, ñ -> n).
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ', r == '-', r == '_', r == '.', r == '/':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "file"
	}
	return out
}
