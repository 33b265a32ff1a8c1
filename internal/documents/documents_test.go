package documents

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestListSourcesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()

	files := []string{"zeta.txt", "alpha.PDF", "notes.md", "team.docx", "deck.pptx"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}

	listing, err := ListSources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIdentities := []string{"alpha", "deck", "team", "zeta"}
	if len(listing.Sources) != len(wantIdentities) {
		t.Fatalf("expected %d sources, got %d", len(wantIdentities), len(listing.Sources))
	}
	for idx, want := range wantIdentities {
		if listing.Sources[idx].Identity != want {
			t.Fatalf("expected identity %q at position %d, got %q", want, idx, listing.Sources[idx].Identity)
		}
	}

	if len(listing.Skipped) != 1 || listing.Skipped[0] != "notes.md" {
		t.Fatalf("expected notes.md to be skipped, got %v", listing.Skipped)
	}
}

func TestListSourcesMissingDirectory(t *testing.T) {
	if _, err := ListSources(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestExtractTextPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("  Jane Doe\nPython, AWS\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	text, err := ExtractText(Source{Path: path, Identity: "resume", Ext: ".txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Jane Doe\nPython, AWS" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n\t"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ExtractText(Source{Path: path, Identity: "empty", Ext: ".txt"}); err == nil {
		t.Fatalf("expected an error for a document without text")
	}
}

func TestExtractTextUnreadableFile(t *testing.T) {
	if _, err := ExtractText(Source{Path: filepath.Join(t.TempDir(), "gone.txt"), Ext: ".txt"}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestExtractTextCorruptedPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ExtractText(Source{Path: path, Identity: "broken", Ext: ".pdf"}); err == nil {
		t.Fatalf("expected an error for a corrupted pdf")
	}
}

const slideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:txBody>
          <a:p><a:r><a:t>%s</a:t></a:r></a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

func TestExtractTextPptx(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}

	writer := zip.NewWriter(file)
	slides := map[string]string{
		"ppt/slides/slide1.xml": "Platform Team Requirements",
		"ppt/slides/slide2.xml": "Minimum 5 years experience",
	}
	for name, text := range slides {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
		if _, err := entry.Write([]byte(fmt.Sprintf(slideXML, text))); err != nil {
			t.Fatalf("writing zip entry: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}

	text, err := ExtractText(Source{Path: path, Identity: "deck", Ext: ".pptx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Platform Team Requirements\nMinimum 5 years experience"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}
