package ateco

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// TitleHit un risultato della ricerca testuale sui titoli.
type TitleHit struct {
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Version Version `json:"version"`
	Score   float64 `json:"score"`
}

// tokenize spezza il testo in parole minuscole alfanumeriche.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// stemTokens applica lo stemming italiano ai token. I token per cui lo
// stemmer fallisce restano invariati.
func stemTokens(tokens []string) []string {
	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stem, err := snowball.Stem(tok, "italian", true)
		if err != nil || stem == "" {
			stem = tok
		}
		stems = append(stems, stem)
	}
	return stems
}

// SearchTitle ricerca per descrizione sui titoli 2022 e 2025 con stemming
// italiano: "produzione di software" trova "Produzione di software non
// connesso all'edizione". Il punteggio è la frazione di radici della query
// presenti nel titolo; i risultati con punteggio zero vengono scartati.
func (ds *Dataset) SearchTitle(query string, limit int) []TitleHit {
	queryStems := stemTokens(tokenize(query))
	if len(queryStems) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		hit   TitleHit
		order int
	}
	var candidates []scored

	consider := func(order int, code, title string, version Version) {
		if code == "" || title == "" {
			return
		}
		titleStems := stemTokens(tokenize(title))
		stemSet := make(map[string]struct{}, len(titleStems))
		for _, s := range titleStems {
			stemSet[s] = struct{}{}
		}
		matched := 0
		for _, qs := range queryStems {
			if _, ok := stemSet[qs]; ok {
				matched++
			}
		}
		if matched == 0 {
			return
		}
		candidates = append(candidates, scored{
			hit: TitleHit{
				Code:    code,
				Title:   title,
				Version: version,
				Score:   float64(matched) / float64(len(queryStems)),
			},
			order: order,
		})
	}

	for i, r := range ds.rows {
		consider(i, r.Code2022, r.Title2022, Version2022)
	}
	for i, r := range ds.rows {
		consider(i, r.Code2025, r.Title2025, Version2025)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].hit.Score != candidates[b].hit.Score {
			return candidates[a].hit.Score > candidates[b].hit.Score
		}
		return candidates[a].order < candidates[b].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	hits := make([]TitleHit, len(candidates))
	for i, c := range candidates {
		hits[i] = c.hit
	}
	return hits
}
