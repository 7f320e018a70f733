package product

import (
	"testing"

	"github.com/lumaxtec/site-backend/domain/content"
)

func TestToClientFillsEmptyCollections(t *testing.T) {
	row := Row{
		ContentID: "thermoscan-400",
		Language:  "de",
		Name:      "ThermoScan 400",
	}

	p := row.ToClient()
	if p.Specs == nil || p.Features == nil || p.Applications == nil || p.Downloads == nil {
		t.Errorf("ToClient left nil collections: specs=%v features=%v applications=%v downloads=%v",
			p.Specs, p.Features, p.Applications, p.Downloads)
	}
}

func TestToClientAppliesCanonicalCategory(t *testing.T) {
	row := Row{
		ContentID: "mvpulse-2",
		Language:  "de",
		Name:      "MVpulse 2",
		Category:  "irgendeine alte Kategorie",
	}

	p := row.ToClient()
	if p.Category != "Machine Vision Lasermodule" {
		t.Errorf("Category = %q, want the canonical family label", p.Category)
	}
}

func TestPartitionSplitsByLanguage(t *testing.T) {
	rows := []Row{
		{ContentID: "linemark-basic", Language: "de", Name: "LineMark Basic"},
		{ContentID: "linemark-basic", Language: "en", Name: "LineMark Basic"},
		{ContentID: "mvpulse", Language: "de", Name: "MVpulse"},
	}

	cat := Partition(rows)
	if len(cat.DE) != 2 || len(cat.EN) != 1 {
		t.Fatalf("partition sizes de=%d en=%d, want 2 and 1", len(cat.DE), len(cat.EN))
	}
	if cat.DE[0].ContentID != "linemark-basic" || cat.DE[1].ContentID != "mvpulse" {
		t.Errorf("input order not preserved: %q, %q", cat.DE[0].ContentID, cat.DE[1].ContentID)
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	cat := Partition(nil)
	if cat.DE == nil || cat.EN == nil {
		t.Errorf("empty partition must serialize as [], got de=%v en=%v", cat.DE, cat.EN)
	}
}

func TestRoundTripThroughRow(t *testing.T) {
	p := Product{
		ContentID:        "linemark-basic",
		Name:             "LineMark Basic",
		Category:         "Linienlaser",
		ShortDescription: "Kompakter Linienlaser",
		Specs:            map[string]string{"Wellenlänge": "635 nm"},
		Features:         []string{"Fächerwinkel 30°-90°"},
		Applications:     []string{"Holzindustrie"},
		Downloads:        []content.Download{{Label: "Datenblatt", URL: "https://example.com/d.pdf"}},
		ImageURL:         "https://example.com/img.jpg",
	}

	row := ToRow(p, content.LanguageDE)
	if row.Language != "de" {
		t.Errorf("Language = %q, want de", row.Language)
	}

	back := row.ToClient()
	if back.Name != p.Name || back.Category != p.Category || back.ShortDescription != p.ShortDescription {
		t.Errorf("round trip changed scalar fields: %+v", back)
	}
	if back.Specs["Wellenlänge"] != "635 nm" {
		t.Errorf("Specs lost in round trip: %v", back.Specs)
	}
	if len(back.Downloads) != 1 || back.Downloads[0].URL != p.Downloads[0].URL {
		t.Errorf("Downloads lost in round trip: %v", back.Downloads)
	}
}
