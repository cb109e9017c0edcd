package ateco

import (
	"sort"
	"strings"
	"unicode"
)

// NormalizeCode normalizza un codice ATECO: rimuove spazi, converte le
// virgole in punti e porta tutto in maiuscolo. Idempotente.
func NormalizeCode(raw string) string {
	c := strings.TrimSpace(raw)
	c = strings.ReplaceAll(c, ",", ".")
	c = strings.ReplaceAll(c, " ", "")
	return strings.ToUpper(c)
}

// StripCode mantiene solo i caratteri alfanumerici del codice.
// Usato per il confronto fuzzy ("64.99.1" -> "64991").
func StripCode(raw string) string {
	var b strings.Builder
	for _, ch := range raw {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		}
	}
	return strings.ToUpper(b.String())
}

// CodeVariants genera le varianti di un codice per il matching flessibile:
// con e senza punti, senza punto finale, e con zero-padding dell'ultimo
// gruppo numerico ("62.1" -> "62.10", "62.100").
func CodeVariants(code string) []string {
	c := NormalizeCode(code)
	if c == "" {
		return nil
	}

	parts := strings.Split(c, ".")
	set := map[string]struct{}{
		c:                        {},
		strings.Join(parts, ""): {},
	}

	if strings.HasSuffix(c, ".") {
		set[strings.TrimSuffix(c, ".")] = struct{}{}
	}

	// Zero-padding dell'ultimo gruppo se numerico
	last := parts[len(parts)-1]
	if last != "" && isDigits(last) {
		prefix := parts[:len(parts)-1]
		switch len(last) {
		case 1:
			set[joinParts(prefix, last+"0")] = struct{}{}
			set[joinParts(prefix, last+"00")] = struct{}{}
		case 2:
			set[joinParts(prefix, last+"0")] = struct{}{}
		}
	}

	variants := make([]string, 0, len(set))
	for v := range set {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}

func joinParts(prefix []string, last string) string {
	if len(prefix) == 0 {
		return last
	}
	return strings.Join(prefix, ".") + "." + last
}
