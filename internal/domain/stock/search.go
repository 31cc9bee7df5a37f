package stock

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer descompone a NFD, elimina marcas diacríticas y recompone.
// "Chaqué" -> "Chaque".
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devuelve el texto en minúsculas y sin acentos, para búsqueda
// insensible a mayúsculas y diacríticos.
func Normalize(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// SearchText construye el texto de búsqueda normalizado de un artículo
// (referencia + talla + color). Se persiste junto al artículo y se mantiene
// en cada escritura.
func SearchText(reference, size, color string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{reference, size, color} {
		if n := Normalize(p); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}
