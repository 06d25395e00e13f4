// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is the detected container format of a document.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "text"
)

// pdfHeaderWindow is how far into the stream the %PDF- marker may appear;
// some producers prepend garbage before the header.
const pdfHeaderWindow = 1024

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Detect sniffs the format of data from its leading bytes.
func Detect(data []byte) Format {
	head := data
	if len(head) > pdfHeaderWindow {
		head = head[:pdfHeaderWindow]
	}

	switch {
	case bytes.Contains(head, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	case utf8.Valid(data) && !bytes.ContainsRune(data, 0):
		return FormatText
	default:
		return FormatUnknown
	}
}

// Extract returns the plain text of the document, pages concatenated in
// order. Unreadable input fails with *ParseError.
func Extract(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", &ParseError{Format: FormatUnknown, Message: "document is empty"}
	}

	format := Detect(data)

	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatText:
		text = string(data)
	default:
		return "", &ParseError{Format: format, Message: "unsupported document format"}
	}

	if err != nil {
		return "", &ParseError{Format: format, Message: "unreadable document", Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &ParseError{Format: format, Message: "no text content found"}
	}

	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		builder.WriteString(content)
	}

	return builder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return wordprocessingText(doc.Editable().GetContent())
}

// wordprocessingText collects the w:t runs of a WordprocessingML body,
// ending every w:p paragraph with a newline.
func wordprocessingText(body string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))

	var (
		builder strings.Builder
		inText  bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				builder.WriteByte('\t')
			case "br":
				builder.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(el)
			}
		}
	}

	return builder.String(), nil
}
