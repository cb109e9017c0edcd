package ateco

import "testing"

// TestCodeSimilarity verifica il punteggio di similarità tra codici
func TestCodeSimilarity(t *testing.T) {
	if got := CodeSimilarity("62.01", "62.01"); got != 1.0 {
		t.Errorf("similarità di codici identici = %f, attesa 1.0", got)
	}
	if got := CodeSimilarity("", ""); got != 1.0 {
		t.Errorf("similarità di stringhe vuote = %f, attesa 1.0", got)
	}

	// Un errore di battitura resta più simile di un codice diverso
	vicino := CodeSimilarity("62.10", "62.01")
	lontano := CodeSimilarity("62.10", "10.11")
	if vicino <= lontano {
		t.Errorf("similarità non ordinata: vicino=%f lontano=%f", vicino, lontano)
	}
}

// TestCodeSimilarity_Trasposizione verifica che la trasposizione di due
// cifre adiacenti conti come una sola operazione
func TestCodeSimilarity_Trasposizione(t *testing.T) {
	// "6201" -> "6210": una trasposizione, distanza 1 su 4 caratteri
	got := CodeSimilarity("6201", "6210")
	want := 1.0 - 1.0/4.0
	if got != want {
		t.Errorf("similarità con trasposizione = %f, attesa %f", got, want)
	}
}

// TestFindSimilar verifica i suggerimenti per un codice assente
func TestFindSimilar(t *testing.T) {
	ds := fixtureDataset()

	suggestions := ds.FindSimilar("62.03", 3)
	if len(suggestions) != 3 {
		t.Fatalf("attesi 3 suggerimenti, trovati %d", len(suggestions))
	}

	// Ordinamento per similarità non crescente
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Similarity > suggestions[i-1].Similarity {
			t.Errorf("suggerimenti non ordinati: %f dopo %f",
				suggestions[i].Similarity, suggestions[i-1].Similarity)
		}
	}

	// I codici 62.xx devono precedere gli altri
	if suggestions[0].Code != "62.01" && suggestions[0].Code != "62.02" {
		t.Errorf("primo suggerimento inatteso: %s", suggestions[0].Code)
	}
}

// TestFindSimilar_TuttiICandidati verifica che con un limite ampio ogni
// codice distinto del dataset riceva un punteggio
func TestFindSimilar_TuttiICandidati(t *testing.T) {
	ds := fixtureDataset()

	suggestions := ds.FindSimilar("99.99.9", 100)
	if len(suggestions) != ds.Len() {
		t.Errorf("attesi %d suggerimenti, trovati %d", ds.Len(), len(suggestions))
	}
}

// TestFindSimilar_Deterministico verifica che due chiamate identiche
// producano lo stesso risultato
func TestFindSimilar_Deterministico(t *testing.T) {
	ds := fixtureDataset()

	prima := ds.FindSimilar("62.10", 5)
	seconda := ds.FindSimilar("62.10", 5)
	if len(prima) != len(seconda) {
		t.Fatalf("lunghezze diverse: %d vs %d", len(prima), len(seconda))
	}
	for i := range prima {
		if prima[i] != seconda[i] {
			t.Errorf("suggerimento %d diverso: %+v vs %+v", i, prima[i], seconda[i])
		}
	}
}

// TestSearchTitle verifica la ricerca testuale con stemming italiano
func TestSearchTitle(t *testing.T) {
	ds := fixtureDataset()

	hits := ds.SearchTitle("produzione software", 5)
	if len(hits) == 0 {
		t.Fatal("attesi risultati per 'produzione software'")
	}
	if hits[0].Code != "62.01" && hits[0].Code != "62.10.0" {
		t.Errorf("primo risultato inatteso: %+v", hits[0])
	}

	// Query senza riscontri
	if hits := ds.SearchTitle("astronave interstellare", 5); len(hits) != 0 {
		t.Errorf("attesi zero risultati, trovati %d", len(hits))
	}
}
