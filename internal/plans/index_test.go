package plans

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePlan(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSearchFindsRelevantDocument(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "jidelnicek_leden.md", "# Lednový jídelníček\n\nOběd: čočková polévka s chlebem.")
	writePlan(t, dir, "jidelnicek_unor.md", "# Únorový jídelníček\n\nVečeře: pečený losos se zeleninou.")

	ix := NewIndex(dir)
	results, err := ix.Search("čočková polévka", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected one result, got %d", len(results))
	}
	if results[0].Filename != "jidelnicek_leden.md" {
		t.Errorf("Expected the lentil-soup plan first, got %q", results[0].Filename)
	}
	if !strings.Contains(results[0].Text, "čočková polévka") {
		t.Errorf("Expected matching excerpt, got %q", results[0].Text)
	}
}

func TestSearchMissingDirectory(t *testing.T) {
	ix := NewIndex(filepath.Join(t.TempDir(), "does-not-exist"))
	results, err := ix.Search("polévka", 3)
	if err != nil {
		t.Fatalf("Missing directory must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %v", results)
	}
}

func TestSearchEmptyDirectory(t *testing.T) {
	ix := NewIndex(t.TempDir())
	results, err := ix.Search("polévka", 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %v", results)
	}
}

func TestSearchPicksUpNewDocuments(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "prvni.md", "Oběd: smažený sýr s bramborem.")

	ix := NewIndex(dir)
	if _, err := ix.Search("guláš", 3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	writePlan(t, dir, "druhy.md", "Večeře: hovězí guláš s knedlíkem.")

	results, err := ix.Search("hovězí guláš", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Filename != "druhy.md" {
		t.Fatalf("Expected the new document found, got %v", results)
	}
}

func TestSearchIgnoresUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "poznamky.bin", "guláš guláš guláš")

	ix := NewIndex(dir)
	results, err := ix.Search("guláš", 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected unsupported files skipped, got %v", results)
	}
}

func TestSplitChunksRespectsParagraphs(t *testing.T) {
	first := strings.Repeat("a", 500)
	second := strings.Repeat("b", 500)
	chunks := splitChunks(first+"\n\n"+second, 800)

	if len(chunks) != 2 {
		t.Fatalf("Expected two chunks, got %d", len(chunks))
	}
	if chunks[0] != first || chunks[1] != second {
		t.Error("Expected the paragraph boundary kept between chunks")
	}
}

func TestSplitChunksMergesShortParagraphs(t *testing.T) {
	chunks := splitChunks("první odstavec\n\ndruhý odstavec", 800)
	if len(chunks) != 1 {
		t.Fatalf("Expected one merged chunk, got %d", len(chunks))
	}
	if chunks[0] != "první odstavec\n\ndruhý odstavec" {
		t.Errorf("Unexpected chunk %q", chunks[0])
	}
}

func TestEmbedIsNormalized(t *testing.T) {
	vec := embed("polévka guláš knedlík")
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm < 0.999 || norm > 1.001 {
		t.Errorf("Expected unit-length embedding, got squared norm %f", norm)
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	a := embed("hovězí guláš")
	if got := cosineSimilarity(a, a); got < 0.999 {
		t.Errorf("Expected similarity ~1 for identical vectors, got %f", got)
	}
}
