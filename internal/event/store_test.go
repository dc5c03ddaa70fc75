package event

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "evento.json"))

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}
}

func TestReplaceThenLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "evento.json"))

	in := map[string]any{
		"nombres_novios": "Ronald y Deisy",
		"fecha":          "2026-05-09",
		"dress_code":     "Formal",
		"padres": map[string]any{
			"padre_novio": "Jorge Fuentes",
		},
	}
	if err := s.Replace(in); err != nil {
		t.Fatalf("replace: %v", err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc["nombres_novios"] != "Ronald y Deisy" || doc["dress_code"] != "Formal" {
		t.Fatalf("unexpected document: %v", doc)
	}
	padres, ok := doc["padres"].(map[string]any)
	if !ok || padres["padre_novio"] != "Jorge Fuentes" {
		t.Fatalf("nested section lost: %v", doc["padres"])
	}
}

func TestReplaceOverwritesWholesale(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "evento.json"))

	if err := s.Replace(map[string]any{"fecha": "2026-05-09", "lugar": "Jardin Las Rosas"}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := s.Replace(map[string]any{"fecha": "2026-06-20"}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := doc["lugar"]; ok {
		t.Fatal("old keys must not survive a wholesale replace")
	}
	if doc["fecha"] != "2026-06-20" {
		t.Fatalf("expected new fecha, got %v", doc["fecha"])
	}
}

func TestReplaceLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "evento.json"))
	if err := s.Replace(map[string]any{"fecha": "2026-05-09"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "evento.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
