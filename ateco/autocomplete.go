package ateco

import "strings"

// AutocompleteSuggestion suggerimento di completamento per un codice parziale.
type AutocompleteSuggestion struct {
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Version Version `json:"version"`
}

// Autocomplete suggerisce codici che iniziano con il prefisso indicato.
// Cerca prima tra i codici 2022 e completa con i 2025 se servono altri
// risultati; i duplicati vengono eliminati sulla forma normalizzata.
func (ds *Dataset) Autocomplete(partial string, limit int) []AutocompleteSuggestion {
	partialNorm := NormalizeCode(partial)
	if partialNorm == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	suggestions := make([]AutocompleteSuggestion, 0, limit)

	collect := func(version Version) {
		for _, r := range ds.rows {
			if len(suggestions) >= limit {
				return
			}
			code := r.codeForVersion(version)
			norm := NormalizeCode(code)
			if norm == "" || !strings.HasPrefix(norm, partialNorm) {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}
			suggestions = append(suggestions, AutocompleteSuggestion{
				Code:    code,
				Title:   r.titleForVersion(version),
				Version: version,
			})
		}
	}

	collect(Version2022)
	if len(suggestions) < limit {
		collect(Version2025)
	}
	return suggestions
}
