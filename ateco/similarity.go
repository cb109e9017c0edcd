package ateco

import "sort"

// SuggestionEntry un codice candidato con il suo punteggio di similarità.
type SuggestionEntry struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// damerauLevenshtein distanza di Damerau-Levenshtein tra due stringhe:
// numero minimo di inserimenti, cancellazioni, sostituzioni e trasposizioni
// di caratteri adiacenti per trasformare una nell'altra.
func damerauLevenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	maxDist := len1 + len2
	matrix := make([][]int, len1+2)
	for i := range matrix {
		matrix[i] = make([]int, len2+2)
	}
	matrix[0][0] = maxDist
	for i := 0; i <= len1; i++ {
		matrix[i+1][0] = maxDist
		matrix[i+1][1] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j+1] = maxDist
		matrix[1][j+1] = j
	}

	// Ultima occorrenza di ciascun carattere in r1
	da := make(map[rune]int)

	for i := 1; i <= len1; i++ {
		db := 0
		for j := 1; j <= len2; j++ {
			i1 := da[r2[j-1]]
			j1 := db
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
				db = j
			}
			matrix[i+1][j+1] = min4(
				matrix[i+1][j]+1,                   // inserimento
				matrix[i][j+1]+1,                   // cancellazione
				matrix[i][j]+cost,                  // sostituzione
				matrix[i1][j1]+(i-i1-1)+1+(j-j1-1), // trasposizione
			)
		}
		da[r1[i-1]] = i
	}

	return matrix[len1+1][len2+1]
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}

// CodeSimilarity similarità tra due codici in [0,1] basata sulla distanza
// di Damerau-Levenshtein delle forme normalizzate. 1.0 = identici.
func CodeSimilarity(a, b string) float64 {
	na := NormalizeCode(a)
	nb := NormalizeCode(b)
	if na == "" && nb == "" {
		return 1.0
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(damerauLevenshtein(na, nb))/float64(maxLen)
}

// FindSimilar calcola suggerimenti per un codice non trovato. Ogni codice
// 2022 distinto del dataset riceve un punteggio (nessun candidato viene
// scartato); il risultato sono i primi limit per similarità decrescente,
// a parità di punteggio vince l'ordine di tabella. Deterministica.
func (ds *Dataset) FindSimilar(code string, limit int) []SuggestionEntry {
	if limit <= 0 {
		return nil
	}
	queryNorm := NormalizeCode(code)

	type scored struct {
		entry SuggestionEntry
		order int
	}
	seen := make(map[string]struct{}, len(ds.rows))
	candidates := make([]scored, 0, len(ds.rows))

	for i, r := range ds.rows {
		if r.Code2022 == "" {
			continue
		}
		norm := r.norm[versionIndex(Version2022)]
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		candidates = append(candidates, scored{
			entry: SuggestionEntry{
				Code:       r.Code2022,
				Title:      r.Title2022,
				Similarity: CodeSimilarity(queryNorm, norm),
			},
			order: i,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].entry.Similarity != candidates[b].entry.Similarity {
			return candidates[a].entry.Similarity > candidates[b].entry.Similarity
		}
		return candidates[a].order < candidates[b].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]SuggestionEntry, len(candidates))
	for i, c := range candidates {
		result[i] = c.entry
	}
	return result
}
