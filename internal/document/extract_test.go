package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{name: "pdf", data: []byte("%PDF-1.7\n..."), want: FormatPDF},
		{name: "pdf after junk", data: append([]byte("\x00\x00junk"), []byte("%PDF-1.4")...), want: FormatPDF},
		{name: "docx", data: []byte("PK\x03\x04rest"), want: FormatDOCX},
		{name: "text", data: []byte("Jane Doe\nGo developer"), want: FormatText},
		{name: "binary", data: []byte{0xff, 0xfe, 0x00, 0x01}, want: FormatUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.data); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	text, err := Extract([]byte("Jane Doe\nFive years of Go"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Jane Doe\nFive years of Go" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractFailures(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "whitespace", data: []byte("  \n ")},
		{name: "broken pdf", data: []byte("%PDF-1.4\nthis is not really a pdf")},
		{name: "broken docx", data: []byte("PK\x03\x04 not a zip archive")},
		{name: "binary", data: []byte{0xff, 0xfe, 0x00, 0x01}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.data)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestWordprocessingText(t *testing.T) {
	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go &amp; Kubernetes</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := wordprocessingText(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Jane\t Doe\nGo & Kubernetes\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// buildPDF returns a minimal PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	fontID := 3 + 2*len(pages)
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// buildDOCX returns a minimal DOCX archive with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/_rels/document.xml.rels"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func TestExtractPDFKeepsPageOrder(t *testing.T) {
	data := buildPDF(t, "FirstPageSkills", "SecondPageExperience")
	if got := Detect(data); got != FormatPDF {
		t.Fatalf("expected %s, got %s", FormatPDF, got)
	}

	text, err := Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := strings.Index(text, "FirstPageSkills")
	second := strings.Index(text, "SecondPageExperience")
	if first < 0 || second < 0 {
		t.Fatalf("missing page text in %q", text)
	}
	if first > second {
		t.Fatalf("pages out of order: %q", text)
	}
}

func TestExtractDOCX(t *testing.T) {
	data := buildDOCX(t, "Jane Doe", "Six years of Go &amp; Kubernetes")
	if got := Detect(data); got != FormatDOCX {
		t.Fatalf("expected %s, got %s", FormatDOCX, got)
	}

	text, err := Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Jane Doe\nSix years of Go & Kubernetes\n"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestExtractEmptyDOCXHasNoText(t *testing.T) {
	_, err := Extract(buildDOCX(t))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
