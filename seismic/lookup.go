package seismic

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper rimuove i segni diacritici (MILANO, FORLI', CEFALU').
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeComune porta il nome di un comune in forma canonica:
// maiuscolo, senza accenti, con apostrofo semplice.
func normalizeComune(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "’", "'")
	if out, _, err := transform.String(accentStripper, s); err == nil {
		return out
	}
	return s
}

// ZoneByComune risolve la zona sismica di un comune con tre strategie in
// cascata: match esatto, match fuzzy, stima per provincia. La provincia,
// se indicata, vincola il risultato.
func (db *Database) ZoneByComune(comune, provincia string) (*Result, error) {
	q := normalizeComune(comune)
	prov := strings.ToUpper(strings.TrimSpace(provincia))

	// Strategia 1: match esatto
	if rec, ok := db.comuni[q]; ok {
		if prov != "" && rec.Provincia != prov {
			return nil, &ProvinciaMismatchError{Comune: q, Richiesta: prov, Trovata: rec.Provincia}
		}
		return db.result(q, rec, SourceDatabase, 1.0), nil
	}

	// Strategia 2: match fuzzy
	matches := db.closeMatches(q, 5, 0.6)
	if len(matches) > 0 {
		best := matches[0]
		if prov != "" {
			best = candidate{}
			for _, m := range matches {
				if db.comuni[m.name].Provincia == prov {
					best = m
					break
				}
			}
			if best.name == "" {
				return nil, &NotFoundError{Comune: q, Suggestions: db.toSuggestions(matches, 3)}
			}
		}

		res := db.result(best.name, db.comuni[best.name], SourceFuzzy, round2(best.score))
		res.InputComune = q
		res.Note = fmt.Sprintf("Match approssimato: %q -> %q", q, best.name)
		return res, nil
	}

	// Strategia 3: stima sulla zona prevalente della provincia
	if prov != "" {
		if res := db.estimateByProvincia(q, prov); res != nil {
			return res, nil
		}
	}

	return nil, &NotFoundError{Comune: q, Suggestions: db.toSuggestions(matches, 5)}
}

// Suggestions propone i comuni più simili all'input, con una soglia più
// permissiva rispetto alla ricerca.
func (db *Database) Suggestions(comune string, limit int) []Suggestion {
	matches := db.closeMatches(normalizeComune(comune), limit, 0.4)
	return db.toSuggestions(matches, limit)
}

func (db *Database) result(comune string, rec zoneRecord, source string, conf float64) *Result {
	regione := rec.Regione
	if regione == "" {
		regione = "N/D"
	}
	return &Result{
		Comune:          comune,
		Provincia:       rec.Provincia,
		Regione:         regione,
		ZonaSismica:     rec.ZonaSismica,
		AccelerazioneAg: rec.AccelerazioneAg,
		RiskLevel:       rec.RiskLevel,
		Description:     ZoneDescription(rec.ZonaSismica),
		Normativa:       Normativa,
		Source:          source,
		Confidence:      conf,
	}
}

// estimateByProvincia stima la zona come la più frequente tra i comuni
// della provincia. Restituisce nil se la provincia è sconosciuta.
func (db *Database) estimateByProvincia(comune, prov string) *Result {
	counts := map[int]int{}
	for _, rec := range db.comuni {
		if rec.Provincia == prov {
			counts[rec.ZonaSismica]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	zona := 0
	for z, n := range counts {
		if zona == 0 || n > counts[zona] || (n == counts[zona] && z < zona) {
			zona = z
		}
	}

	risk := "N/D"
	if zona >= 1 && zona <= len(riskLevels) {
		risk = riskLevels[zona-1]
	}

	return &Result{
		Comune:          comune,
		Provincia:       prov,
		ZonaSismica:     zona,
		AccelerazioneAg: db.agForZone(zona),
		RiskLevel:       risk,
		Description:     ZoneDescription(zona),
		Normativa:       Normativa,
		Source:          SourceProvincia,
		Confidence:      0.5,
		Note:            fmt.Sprintf("Stima basata sulla zona prevalente della provincia %s", prov),
	}
}

type candidate struct {
	name  string
	score float64
}

// closeMatches restituisce i comuni con similarità almeno cutoff,
// ordinati per similarità non crescente. A parità di punteggio vince
// l'ordine alfabetico.
func (db *Database) closeMatches(q string, limit int, cutoff float64) []candidate {
	if q == "" || limit <= 0 {
		return nil
	}

	var out []candidate
	for _, name := range db.names {
		if score := similarity(q, name); score >= cutoff {
			out = append(out, candidate{name: name, score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (db *Database) toSuggestions(matches []candidate, limit int) []Suggestion {
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		rec := db.comuni[m.name]
		out = append(out, Suggestion{
			Comune:      m.name,
			Provincia:   rec.Provincia,
			ZonaSismica: rec.ZonaSismica,
		})
	}
	return out
}

// similarity misura la somiglianza tra due nomi come complemento della
// distanza di Damerau-Levenshtein rapportata alla lunghezza maggiore.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(damerauLevenshtein(ra, rb))/float64(maxLen)
}

// damerauLevenshtein distanza di edit con trasposizioni adiacenti.
func damerauLevenshtein(s1, s2 []rune) int {
	lenS1, lenS2 := len(s1), len(s2)
	maxDist := lenS1 + lenS2

	da := make(map[rune]int)
	d := make([][]int, lenS1+2)
	for i := range d {
		d[i] = make([]int, lenS2+2)
	}

	d[0][0] = maxDist
	for i := 0; i <= lenS1; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lenS2; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	for i := 1; i <= lenS1; i++ {
		db := 0
		for j := 1; j <= lenS2; j++ {
			k := da[s2[j-1]]
			l := db
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
				db = j
			}
			d[i+1][j+1] = min4(
				d[i][j]+cost,
				d[i+1][j]+1,
				d[i][j+1]+1,
				d[k][l]+(i-k-1)+1+(j-l-1),
			)
		}
		da[s1[i-1]] = i
	}
	return d[lenS1+1][lenS2+1]
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

// round2 arrotonda la confidence a due decimali.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
