package visura

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Extractor estrae i campi anagrafici dal testo di una visura camerale.
// L'estrazione è conservativa: un campo dubbio viene scartato, mai
// inventato.
type Extractor struct{}

// NewExtractor crea un estrattore.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile estrae i dati da una visura su disco.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("apertura visura fallita: %w", err)
	}
	defer f.Close()
	return e.Extract(f)
}

// Extract estrae i dati da una visura PDF letta da reader.
func (e *Extractor) Extract(reader io.Reader) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("lettura visura fallita: %w", err)
	}

	text, err := extractPDFText(data)
	if err != nil {
		return nil, err
	}
	return e.ExtractText(text), nil
}

// ExtractText estrae i campi dal testo grezzo. Non fallisce mai: i campi
// non trovati restano vuoti e abbassano la confidence.
func (e *Extractor) ExtractText(text string) *Result {
	res := &Result{
		Denominazione:    extractDenominazione(text),
		PartitaIVA:       extractPartitaIVA(text),
		CodiciAteco:      extractCodiciAteco(text),
		OggettoSociale:   extractOggettoSociale(text),
		SedeLegale:       extractSedeLegale(text),
		ExtractionMethod: "backend",
	}
	res.Confidence = confidence(
		res.PartitaIVA != "",
		len(res.CodiciAteco) > 0,
		res.OggettoSociale != "",
	)
	if res.CodiciAteco == nil {
		res.CodiciAteco = []CodiceAteco{}
	}
	return res
}

var pivaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:partita\s+iva|p\.?\s?iva|vat)[\s:]+(\d{11})`),
	regexp.MustCompile(`(?i)(?:codice\s+fiscale|c\.f\.)[\s:]+(\d{11})`),
	regexp.MustCompile(`\b(\d{11})\b`),
}

// extractPartitaIVA trova una partita IVA di 11 cifre, preferendo le
// occorrenze etichettate.
func extractPartitaIVA(text string) string {
	for _, re := range pivaPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

var atecoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:codice\s+ateco|ateco|attivit[aà]\s+prevalente)[\s:]+(\d{2}[.\s]\d{2}(?:[.\s]\d{1,2})?)`),
	regexp.MustCompile(`(?i)codice\s+attivit[aà][\s:]+(\d{2}[.\s]\d{2}(?:[.\s]\d{1,2})?)`),
	regexp.MustCompile(`(?i)importanza[\s:]+[pi]\s*-\D*(\d{2}[.\s]\d{2}(?:[.\s]\d{1,2})?)`),
	regexp.MustCompile(`\b(\d{2}\.\d{2}(?:\.\d{1,2})?)\b`),
}

var multiSep = regexp.MustCompile(`[.\s]+`)

// extractCodiciAteco trova i codici attività nel formato XX.XX o XX.XX.XX.
// I prefissi 19, 20 e 21 senza etichetta vengono scartati: troppo facili
// da confondere con un anno.
func extractCodiciAteco(text string) []CodiceAteco {
	var codes []CodiceAteco
	seen := map[string]bool{}

	for i, re := range atecoPatterns {
		labeled := i < len(atecoPatterns)-1
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			code := multiSep.ReplaceAllString(strings.TrimSpace(m[1]), ".")
			if !validAtecoFormat(code) {
				continue
			}
			if !labeled && looksLikeYearPrefix(code) {
				continue
			}
			if seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, CodiceAteco{
				Codice:     code,
				Principale: len(codes) == 0,
			})
		}
		if len(codes) > 0 {
			break
		}
	}
	return codes
}

var atecoFormat = regexp.MustCompile(`^\d{2}\.\d{2}(?:\.\d{1,2})?$`)

func validAtecoFormat(code string) bool {
	return atecoFormat.MatchString(code)
}

func looksLikeYearPrefix(code string) bool {
	first, err := strconv.Atoi(strings.SplitN(code, ".", 2)[0])
	if err != nil {
		return false
	}
	return first == 19 || first == 20 || first == 21
}

var oggettoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:oggetto\s+sociale|oggetto)[\s:]+([^\n]+(?:\n(?![A-Z]{2,}:)[^\n]+)*)`),
	regexp.MustCompile(`(?is)(?:attivit[aà]'?)[\s:]+([^\n]+(?:\n(?!data|numero|codice)[^\n]+)*)`),
}

// businessKeywords parole che distinguono un vero oggetto sociale da una
// riga qualunque.
var businessKeywords = []string{
	"produzione", "commercio", "servizi", "consulenza", "vendita",
	"attività", "gestione", "intermediazione", "commercializzazione",
	"fornitura", "prestazione", "realizzazione", "sviluppo",
}

const (
	oggettoMinLen = 30
	oggettoMaxLen = 500
)

// extractOggettoSociale cerca l'oggetto sociale: almeno 30 caratteri e
// almeno una parola chiave di attività economica.
func extractOggettoSociale(text string) string {
	for _, re := range oggettoPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		oggetto := strings.Join(strings.Fields(m[1]), " ")
		if len(oggetto) < oggettoMinLen {
			continue
		}
		lower := strings.ToLower(oggetto)
		for _, kw := range businessKeywords {
			if strings.Contains(lower, kw) {
				if len(oggetto) > oggettoMaxLen {
					oggetto = oggetto[:oggettoMaxLen] + "..."
				}
				return oggetto
			}
		}
	}
	return ""
}

var denominazioneRe = regexp.MustCompile(`(?i)(?:denominazione|ragione\s+sociale)[\s:]+([^\n]+)`)

func extractDenominazione(text string) string {
	m := denominazioneRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	name := strings.Join(strings.Fields(m[1]), " ")
	if len(name) <= 3 {
		return ""
	}
	return strings.ToUpper(name)
}

var (
	comuneRe = regexp.MustCompile(`(?i)(?:sede(?:\s+legale)?[^\n]*?comune|comune)[\s:]+([A-Z][A-Za-z'\s]+?)\s*\(([A-Z]{2})\)`)
	capRe    = regexp.MustCompile(`(?i)cap[\s:]+(\d{5})`)
)

// extractSedeLegale trova comune e provincia della sede legale, nel
// formato "COMUNE (PR)".
func extractSedeLegale(text string) *SedeLegale {
	m := comuneRe.FindStringSubmatch(text)
	if len(m) < 3 {
		return nil
	}
	comune := strings.ToUpper(strings.TrimSpace(m[1]))
	comune = strings.TrimPrefix(comune, "DI ")

	sede := &SedeLegale{
		Comune:    comune,
		Provincia: m[2],
	}
	if cm := capRe.FindStringSubmatch(text); len(cm) > 1 {
		sede.CAP = cm[1]
	}
	return sede
}
