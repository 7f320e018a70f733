package faq

import (
	"reflect"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{ID: 1, ContentID: "faq-delivery", Language: "de", Question: "Lieferzeit?", Category: "Bestellung", OrderIndex: 2},
		{ID: 2, ContentID: "faq-warranty", Language: "de", Question: "Garantie?", Category: "Service", OrderIndex: 1},
		{ID: 3, ContentID: "faq-payment", Language: "de", Question: "Zahlung?", Category: "Bestellung", OrderIndex: 1},
		{ID: 4, ContentID: "faq-delivery", Language: "en", Question: "Delivery time?", Category: "Ordering", OrderIndex: 1},
		{ID: 5, ContentID: "faq-custom", Language: "de", Question: "Sonderanfertigung?", Category: "Service", OrderIndex: 1},
	}
}

func TestGroupRowsShape(t *testing.T) {
	grouped := GroupRows(sampleRows())

	if len(grouped.DE) != 2 {
		t.Fatalf("de groups = %d, want 2", len(grouped.DE))
	}
	if len(grouped.EN) != 1 {
		t.Fatalf("en groups = %d, want 1", len(grouped.EN))
	}

	// Categories sorted lexicographically.
	if grouped.DE[0].Category != "Bestellung" || grouped.DE[1].Category != "Service" {
		t.Errorf("de categories = %q, %q", grouped.DE[0].Category, grouped.DE[1].Category)
	}

	// Questions inside a category sorted by order index.
	ordering := grouped.DE[0]
	if ordering.Questions[0].ContentID != "faq-payment" || ordering.Questions[1].ContentID != "faq-delivery" {
		t.Errorf("Bestellung order = %q, %q", ordering.Questions[0].ContentID, ordering.Questions[1].ContentID)
	}
}

func TestGroupRowsOrderIndexTiesKeepStorageOrder(t *testing.T) {
	grouped := GroupRows(sampleRows())

	service := grouped.DE[1]
	if len(service.Questions) != 2 {
		t.Fatalf("Service questions = %d, want 2", len(service.Questions))
	}
	// Both carry order index 1; the lower row id wins.
	if service.Questions[0].ContentID != "faq-warranty" || service.Questions[1].ContentID != "faq-custom" {
		t.Errorf("tie-break order = %q, %q", service.Questions[0].ContentID, service.Questions[1].ContentID)
	}
}

func TestGroupRowsDeterministicAcrossInputOrder(t *testing.T) {
	rows := sampleRows()
	want := GroupRows(rows)

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}
	for _, perm := range permutations {
		shuffled := make([]Row, len(rows))
		for i, j := range perm {
			shuffled[i] = rows[j]
		}
		got := GroupRows(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("grouping differs for input order %v", perm)
		}
	}
}

func TestGroupRowsEmptyInput(t *testing.T) {
	grouped := GroupRows(nil)
	if grouped.DE == nil || grouped.EN == nil {
		t.Errorf("empty grouping must serialize as [], got de=%v en=%v", grouped.DE, grouped.EN)
	}
}
