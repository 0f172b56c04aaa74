// Package extract turns uploaded resume files into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-ats/internal/shared/storage/object"
	"resume-ats/resume/contract"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	// ErrUnsupportedType is wrapped in an ExtractionError for file types with no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")

	dataURLPrefix = regexp.MustCompile(`^data:application/pdf;base64,`)
	base64Head    = regexp.MustCompile(`^[A-Za-z0-9+/\s]+=*$`)
)

// FromStore pulls text from a stored object and persists a derived .extracted.txt copy.
func FromStore(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", fileKey, mimeType, err)
	}

	text, err := Text(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}

	if _, err := store.SaveWithKey(ctx, object.ExtractedKey(fileKey), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: save derived: %w", fileKey, mimeType, err)
	}
	return text, nil
}

// Text extracts text from an in-memory payload. Collaborator failures come back
// as contract.ExtractionError and empty output as contract.NoContentError.
func Text(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text   string
		err    error
		source string
	)
	switch normalized := NormalizeMimeType(mimeType, fileName, data); normalized {
	case MimePDF:
		source = "PDF"
		text, err = pdfText(data)
	case MimeDOCX:
		source = "DOCX"
		text, err = docxText(data)
	case MimeText:
		source = "text file"
		if !utf8.Valid(data) {
			err = errors.New("text file is not valid UTF-8")
		}
		text = string(data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if err != nil {
		return "", contract.ExtractionError{Err: err}
	}

	text = clean(text)
	if text == "" {
		return "", contract.NoContentError{Source: source}
	}
	return text, nil
}

// PDFText extracts the text of a PDF payload.
func PDFText(ctx context.Context, data []byte) (string, error) {
	return Text(ctx, data, MimePDF, "")
}

// DecodeBase64 decodes a base64 PDF payload, accepting an optional
// data:application/pdf;base64, prefix.
func DecodeBase64(encoded string) ([]byte, error) {
	cleaned := strings.TrimSpace(dataURLPrefix.ReplaceAllString(strings.TrimSpace(encoded), ""))
	if cleaned == "" {
		return nil, contract.InvalidInputError{Field: "pdf", Reason: "no PDF content provided"}
	}
	head := cleaned
	if len(head) > 200 {
		head = head[:200]
	}
	if !base64Head.MatchString(head) {
		return nil, contract.InvalidInputError{Field: "pdf", Reason: "content does not appear to be base64 encoded"}
	}
	compact := strings.Join(strings.Fields(cleaned), "")
	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(compact, "="))
	}
	if err != nil {
		return nil, contract.InvalidInputError{Field: "pdf", Reason: "content is not valid base64", Err: err}
	}
	return data, nil
}

func clean(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// pdfText recovers from reader panics, which the pdf package raises on
// truncated or malformed cross-reference data.
func pdfText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	if text := pdfRows(reader); strings.TrimSpace(text) != "" {
		return text, nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pdfRows rebuilds the visual lines of each page so section headings stay on
// their own line. Fragments separated by a visible gap are joined with a space.
func pdfRows(reader *pdf.Reader) string {
	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			var prevEnd float64
			for j, word := range row.Content {
				if j > 0 && word.X-prevEnd > word.FontSize*0.15 && !strings.HasSuffix(line.String(), " ") && !strings.HasPrefix(word.S, " ") {
					line.WriteByte(' ')
				}
				line.WriteString(word.S)
				prevEnd = word.X + word.W
			}
			out.WriteString(line.String())
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return docxXMLText(rc)
}

func docxXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteString("\t")
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String(), nil
}

// NormalizeMimeType maps a declared content type to one of the supported
// extractor types, looking inside zip payloads and at the file extension when
// the declared type is generic.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean
	case "text/markdown":
		return MimeText
	case "application/zip":
		if isDOCXArchive(data) || ext == ".docx" {
			return MimeDOCX
		}
		return clean
	case "", "application/octet-stream":
		switch {
		case bytes.HasPrefix(data, []byte("%PDF-")) || ext == ".pdf":
			return MimePDF
		case ext == ".docx" || isDOCXArchive(data):
			return MimeDOCX
		case ext == ".txt" || ext == ".md":
			return MimeText
		}
	}
	return clean
}

func isDOCXArchive(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
