package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteTSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "valeros")
	file := filepath.Join(dir, "valeros.tsv")
	sheet := valeros(t)

	if err := writeTSV(file, sheet); err != nil {
		t.Fatalf("Unexpected error writing TSV file (%v)", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Unexpected error reading export directory (%v)", err)
	}

	if len(entries) != 1 || entries[0].Name() != "valeros.tsv" {
		t.Errorf("Expected only the exported file in %v, got %v", dir, entries)
	}

	imported, err := loadTSV(file)
	if err != nil {
		t.Fatalf("Unexpected error reading TSV file (%v)", err)
	}

	if !reflect.DeepEqual(imported, sheet) {
		t.Errorf("Incorrect imported character\n   expected:%+v\n   got:     %+v", sheet, imported)
	}
}

func TestWriteTSVReplacesExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "valeros.tsv")

	if err := os.WriteFile(file, []byte("stale"), 0660); err != nil {
		t.Fatalf("Unexpected error creating file (%v)", err)
	}

	if err := writeTSV(file, valeros(t)); err != nil {
		t.Fatalf("Unexpected error writing TSV file (%v)", err)
	}

	if sheet, err := loadTSV(file); err != nil {
		t.Errorf("Unexpected error reading TSV file (%v)", err)
	} else if sheet.Name != "Valeros" {
		t.Errorf("Incorrect name - expected:%v, got:%v", "Valeros", sheet.Name)
	}
}
