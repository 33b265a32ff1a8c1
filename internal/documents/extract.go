package documents

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText reads the document behind src and returns its plain text.
// Unreadable, password-protected, or empty documents return an error;
// callers are expected to skip the document and continue the run.
func ExtractText(src Source) (string, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", src.Path, err)
	}

	var text string
	switch src.Ext {
	case ".txt":
		text = string(data)
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".pptx":
		text, err = extractPptxText(data)
	default:
		return "", fmt.Errorf("unsupported document type: %s", src.Ext)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("document %q contains no extractable text", src.Path)
	}

	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// slideTextRun matches DrawingML <a:t> text runs inside slide XML.
type slideTextRun struct {
	Text []string `xml:"cSld>spTree>sp>txBody>p>r>t"`
}

func extractPptxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pptx: %w", err)
	}

	var slides []*zip.File
	for _, file := range archive.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file)
		}
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Name < slides[j].Name })

	var builder strings.Builder
	for _, slide := range slides {
		text, err := readSlideText(slide)
		if err != nil {
			return "", fmt.Errorf("slide %q: %w", slide.Name, err)
		}
		if text != "" {
			builder.WriteString(text)
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

func readSlideText(file *zip.File) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	var run slideTextRun
	if err := xml.Unmarshal(data, &run); err != nil {
		return "", err
	}

	return strings.Join(run.Text, "\n"), nil
}
