package ateco

import "strings"

// Relevance indica come un insieme di righe ha soddisfatto la query.
type Relevance string

const (
	RelevanceExact    Relevance = "exact"
	RelevancePrefix   Relevance = "prefix"
	RelevanceFallback Relevance = "fallback"
	RelevanceNone     Relevance = "none"
)

// MatchResult righe che hanno soddisfatto la ricerca, in ordine di tabella,
// con il tipo di match e la versione su cui il match è avvenuto.
type MatchResult struct {
	Rows      []Row
	Relevance Relevance
	Version   Version
}

// Empty è vero quando nessuna riga ha soddisfatto la query.
// Non è un errore: il chiamante passa ai suggerimenti.
func (m MatchResult) Empty() bool {
	return len(m.Rows) == 0
}

// orderFor restituisce l'ordine di ricerca tra le versioni, riordinato in
// modo stabile se prefer è valorizzato: la versione preferita viene provata
// per prima, le altre mantengono l'ordine predefinito.
func orderFor(prefer Version) []Version {
	if prefer == "" {
		return searchOrder
	}
	ordered := make([]Version, 0, len(searchOrder))
	ordered = append(ordered, prefer)
	for _, v := range searchOrder {
		if v != prefer {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

// versionIndex posizione della versione in searchOrder (per norm/strip).
func versionIndex(v Version) int {
	for i, sv := range searchOrder {
		if sv == v {
			return i
		}
	}
	return 0
}

// SearchSmart cerca un codice ATECO con fallback tra versioni 2022/2025.
//
// Strategia, nell'ordine:
//  1. match esatto di una qualunque variante del codice contro le forme
//     normalizzata, strip e grezza di ogni colonna versione;
//  2. se prefix=true, match per prefisso nello stesso ordine di versioni;
//  3. fallback: ricerca per prefisso sulla sola colonna 2022.
//
// prefer riordina le versioni ma non cambia MAI quali righe possono
// matchare, solo quale colonna vince a parità. Risultato vuoto = nessun
// match, mai un errore. Funzione pura del dataset e della query.
func (ds *Dataset) SearchSmart(code string, prefer Version, prefix bool) MatchResult {
	variants := CodeVariants(code)
	if len(variants) == 0 {
		return MatchResult{Relevance: RelevanceNone}
	}
	order := orderFor(prefer)

	// Fase 1: match esatto
	for _, version := range order {
		vi := versionIndex(version)
		var hits []Row
		for _, r := range ds.rows {
			if rowMatchesExact(&r, vi, version, variants) {
				hits = append(hits, r)
			}
		}
		if len(hits) > 0 {
			return MatchResult{Rows: hits, Relevance: RelevanceExact, Version: version}
		}
	}

	// Fase 2: match per prefisso (se richiesto)
	if prefix {
		for _, version := range order {
			vi := versionIndex(version)
			var hits []Row
			for _, r := range ds.rows {
				if rowMatchesPrefix(&r, vi, version, variants) {
					hits = append(hits, r)
				}
			}
			if len(hits) > 0 {
				return MatchResult{Rows: hits, Relevance: RelevancePrefix, Version: version}
			}
		}
	}

	// Fase 3: fallback gerarchico sui codici 2022
	vi := versionIndex(Version2022)
	var hits []Row
	for _, r := range ds.rows {
		for _, v := range variants {
			if v != "" && strings.HasPrefix(r.norm[vi], v) {
				hits = append(hits, r)
				break
			}
		}
	}
	if len(hits) > 0 {
		return MatchResult{Rows: hits, Relevance: RelevanceFallback, Version: Version2022}
	}
	return MatchResult{Relevance: RelevanceNone}
}

func rowMatchesExact(r *Row, vi int, version Version, variants []string) bool {
	raw := NormalizeCode(r.codeForVersion(version))
	for _, v := range variants {
		if v == "" {
			continue
		}
		if r.norm[vi] == v || r.strip[vi] == v || raw == v {
			return true
		}
	}
	return false
}

func rowMatchesPrefix(r *Row, vi int, version Version, variants []string) bool {
	raw := NormalizeCode(r.codeForVersion(version))
	for _, v := range variants {
		if v == "" {
			continue
		}
		if strings.HasPrefix(r.norm[vi], v) || strings.HasPrefix(r.strip[vi], v) || strings.HasPrefix(raw, v) {
			return true
		}
	}
	return false
}
