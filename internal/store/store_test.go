package store

import (
	"testing"

	drill "github.com/o-ludvik/Olivers-pages"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal("open store:", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSheetRoundTrip(t *testing.T) {
	s := openTest(t)
	fields := []drill.Field{
		{ID: "lhs", EquationTags: "1a", Placeholder: "7+"},
		{EquationTags: "1b", Unknown: true},
		{ID: "rhs", EquationTags: "1c", Placeholder: "=15"},
	}
	created, err := s.CreateSheet("sums to 15", fields)
	if err != nil {
		t.Fatal("create sheet:", err)
	}
	if created.Fields[1].ID == "" {
		t.Error("field without an ID should get a generated one")
	}

	got, err := s.GetSheet(created.ID)
	if err != nil {
		t.Fatal("get sheet:", err)
	}
	if got.Name != "sums to 15" {
		t.Errorf("want name %q, got %q", "sums to 15", got.Name)
	}
	if len(got.Fields) != 3 {
		t.Fatalf("want 3 fields, got %d", len(got.Fields))
	}
	for i, f := range created.Fields {
		if got.Fields[i] != f {
			t.Errorf("field %d: want %+v, got %+v", i, f, got.Fields[i])
		}
	}

	sheets, err := s.ListSheets()
	if err != nil {
		t.Fatal("list sheets:", err)
	}
	if len(sheets) != 1 || sheets[0].ID != created.ID {
		t.Errorf("want one sheet %s, got %v", created.ID, sheets)
	}
}

func TestDeleteSheet(t *testing.T) {
	s := openTest(t)
	created, err := s.CreateSheet("temp", []drill.Field{{EquationTags: "1a", Unknown: true}})
	if err != nil {
		t.Fatal("create sheet:", err)
	}
	if err := s.DeleteSheet(created.ID); err != nil {
		t.Fatal("delete sheet:", err)
	}
	if _, err := s.GetSheet(created.ID); err == nil {
		t.Error("sheet still retrievable after delete")
	}
	if err := s.DeleteSheet(created.ID); err == nil {
		t.Error("deleting a missing sheet should fail")
	}
}
