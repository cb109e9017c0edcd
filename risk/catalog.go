// Package risk implementa il catalogo degli eventi di rischio operativo e
// i calcoli di punteggio e matrice derivati dal modello Excel originale.
package risk

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// Event un evento di rischio del catalogo.
type Event struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

// CategoryEvents gli eventi di una categoria risolta.
type CategoryEvents struct {
	Category        string  `json:"category"`
	OriginalRequest string  `json:"original_request"`
	Events          []Event `json:"events"`
	Total           int     `json:"total"`
}

// UnknownCategoryError categoria non riconosciuta, con le alternative.
type UnknownCategoryError struct {
	Category  string
	Available []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("categoria %q non trovata", e.Category)
}

// catalogFile struttura del file MAPPATURE_EXCEL_PERFETTE.json.
type catalogFile struct {
	Categories   map[string][]string `json:"mappature_categoria_eventi"`
	Descriptions map[string]string   `json:"vlookup_map"`
}

// Catalog il catalogo degli eventi di rischio raggruppati per categoria
// Basilea II, con le descrizioni VLOOKUP del foglio Excel.
type Catalog struct {
	categories   map[string][]string
	descriptions map[string]string
}

// fallbackCategories categorie note quando il file dati è assente.
var fallbackCategories = []string{
	"Damage_Danni",
	"Business_disruption",
	"Employment_practices_Dipendenti",
	"Execution_delivery_Problemi_di_produzione_o_consegna",
	"Clients_product_Clienti",
	"Internal_Fraud_Frodi_interne",
	"External_fraud_Frodi_esterne",
}

// categoryAliases alias comuni verso le categorie Excel.
var categoryAliases = map[string]string{
	"operational":    "Execution_delivery_Problemi_di_produzione_o_consegna",
	"cyber":          "Business_disruption",
	"compliance":     "Clients_product_Clienti",
	"financial":      "Internal_Fraud_Frodi_interne",
	"damage":         "Damage_Danni",
	"employment":     "Employment_practices_Dipendenti",
	"external_fraud": "External_fraud_Frodi_esterne",
}

// LoadCatalog carica il catalogo dal file JSON. Un file mancante non è
// fatale: restano le categorie note, senza eventi.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️ File mappature rischio non trovato: %s, catalogo vuoto", path)
			return NewCatalog(nil, nil), nil
		}
		return nil, fmt.Errorf("lettura mappature rischio fallita: %w", err)
	}

	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("mappature rischio corrotte: %w", err)
	}

	log.Printf("Mappature rischio caricate: %d categorie da %s", len(cf.Categories), path)
	return NewCatalog(cf.Categories, cf.Descriptions), nil
}

// NewCatalog costruisce un catalogo in memoria.
func NewCatalog(categories map[string][]string, descriptions map[string]string) *Catalog {
	if categories == nil {
		categories = map[string][]string{}
		for _, c := range fallbackCategories {
			categories[c] = nil
		}
	}
	if descriptions == nil {
		descriptions = map[string]string{}
	}
	return &Catalog{categories: categories, descriptions: descriptions}
}

// Categories restituisce i nomi delle categorie in ordine stabile.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for name := range c.categories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CategoryAliases restituisce la mappa alias -> categoria Excel.
func CategoryAliases() map[string]string {
	out := make(map[string]string, len(categoryAliases))
	for k, v := range categoryAliases {
		out[k] = v
	}
	return out
}

// NormalizeCategory risolve un nome di categoria: match esatto, alias,
// poi match per sottostringa. Stringa vuota se irrisolvibile.
func (c *Catalog) NormalizeCategory(category string) string {
	if _, ok := c.categories[category]; ok {
		return category
	}

	lower := strings.ToLower(category)
	if real, ok := categoryAliases[lower]; ok {
		return real
	}

	for _, cat := range c.Categories() {
		if strings.Contains(strings.ToLower(cat), lower) {
			return cat
		}
	}
	return ""
}

// EventsForCategory elenca gli eventi di una categoria, risolvendo alias
// e nomi parziali.
func (c *Catalog) EventsForCategory(category string) (*CategoryEvents, error) {
	real := c.NormalizeCategory(category)
	if real == "" {
		return nil, &UnknownCategoryError{Category: category, Available: c.Categories()}
	}

	// Formato Excel: "101 - Nome evento"
	var events []Event
	for _, entry := range c.categories[real] {
		parts := strings.SplitN(entry, " - ", 2)
		if len(parts) != 2 {
			continue
		}
		code := strings.TrimSpace(parts[0])
		events = append(events, Event{
			Code:     code,
			Name:     strings.TrimSpace(parts[1]),
			Severity: SeverityForCode(code),
		})
	}

	return &CategoryEvents{
		Category:        real,
		OriginalRequest: category,
		Events:          events,
		Total:           len(events),
	}, nil
}

// findEvent cerca un evento per codice in tutte le categorie.
func (c *Catalog) findEvent(code string) (name, category string, ok bool) {
	prefix := code + " - "
	for cat, entries := range c.categories {
		for _, entry := range entries {
			if strings.HasPrefix(entry, prefix) {
				return strings.SplitN(entry, " - ", 2)[1], cat, true
			}
		}
	}
	return "", "", false
}
