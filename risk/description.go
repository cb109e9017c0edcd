package risk

import (
	"regexp"
	"strings"
)

// Description la scheda descrittiva di un evento di rischio.
type Description struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Impact      string   `json:"impact"`
	Probability string   `json:"probability"`
	Controls    []string `json:"controls"`
	Source      string   `json:"source"`
	HasVlookup  bool     `json:"has_vlookup"`
}

// SeverityForCode severità derivata dal prefisso del codice evento.
func SeverityForCode(code string) string {
	switch prefix(code) {
	case '1', '4':
		return "medium"
	case '2', '5':
		return "high"
	case '3':
		return "low"
	case '6', '7':
		return "critical"
	}
	return "medium"
}

// impactForCode descrizione dell'impatto per prefisso.
func impactForCode(code string) string {
	switch prefix(code) {
	case '1':
		return "Danni fisici e materiali"
	case '2':
		return "Interruzione operativa e perdita dati"
	case '3':
		return "Problemi con dipendenti e clima aziendale"
	case '4':
		return "Errori di processo e consegna"
	case '5':
		return "Perdita clienti e sanzioni"
	case '6':
		return "Frodi interne e perdite finanziarie"
	case '7':
		return "Frodi esterne e attacchi cyber"
	}
	return "Da valutare caso per caso"
}

// probabilityForCode probabilità tipica per prefisso.
func probabilityForCode(code string) string {
	switch prefix(code) {
	case '1', '6':
		return "low"
	case '2', '3', '5', '7':
		return "medium"
	case '4':
		return "high"
	}
	return "unknown"
}

// controlsForCode controlli raccomandati per prefisso.
func controlsForCode(code string) []string {
	switch prefix(code) {
	case '1':
		return []string{"Assicurazione danni", "Manutenzione preventiva", "Procedure di emergenza"}
	case '2':
		return []string{"Backup e recovery", "Ridondanza sistemi", "Monitoring continuo"}
	case '3':
		return []string{"HR policies", "Formazione continua", "Welfare aziendale"}
	case '4':
		return []string{"Quality control", "Process automation", "KPI monitoring"}
	case '5':
		return []string{"Customer satisfaction", "Compliance monitoring", "Legal review"}
	case '6':
		return []string{"Audit interni", "Segregation of duties", "Whistleblowing"}
	case '7':
		return []string{"Cybersecurity", "Fraud detection", "Identity verification"}
	}
	return []string{"Controlli standard da definire"}
}

func prefix(code string) byte {
	if code == "" {
		return 0
	}
	return code[0]
}

var digitsRe = regexp.MustCompile(`\d+`)

// CleanEventCode ripulisce un codice evento arrivato sporco dal frontend
// (es. "[object Object]" o un JSON serializzato). Stringa vuota se non
// contiene cifre.
func CleanEventCode(code string) string {
	if strings.Contains(strings.ToLower(code), "[object") || strings.Contains(code, "{") {
		return digitsRe.FindString(code)
	}
	return strings.TrimSpace(code)
}

// DescribeEvent costruisce la scheda di un evento. Per i codici fuori
// catalogo restituisce una scheda generica, mai un errore.
func (c *Catalog) DescribeEvent(code string) *Description {
	code = CleanEventCode(code)

	name, category, found := c.findEvent(code)
	if !found {
		return &Description{
			Code:        code,
			Name:        "Evento non mappato",
			Description: "Evento " + code + " non presente nel mapping",
			Impact:      "Da valutare",
			Probability: "unknown",
			Controls:    []string{"Da definire in base all'analisi specifica"},
			Source:      "Generic",
		}
	}

	description := name
	vlookup, hasVlookup := c.descriptions[code]
	if hasVlookup {
		description = vlookup
	}

	return &Description{
		Code:        code,
		Name:        name,
		Description: description,
		Category:    category,
		Impact:      impactForCode(code),
		Probability: probabilityForCode(code),
		Controls:    controlsForCode(code),
		Source:      "Excel Risk Mapping",
		HasVlookup:  hasVlookup,
	}
}
