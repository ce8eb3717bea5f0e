// Package extractor turns a statement PDF into the ordered sequence of
// trimmed text lines the parsers consume. It is deliberately a thin
// collaborator: everything that understands the statement content lives in
// the parser package.
package extractor

import (
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractLines reads a PDF file and returns its text as trimmed lines, one
// per source line, page order preserved, empty lines kept. It tries several
// extraction methods because statement PDFs vary in how the text layer is
// encoded; a readability gate rejects garbage so the next method can run.
func ExtractLines(filePath string) ([]string, error) {
	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(pages) {
		return splitLines(pages), nil
	}

	popplerPages, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerPages) {
		return splitLines(popplerPages), nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v; the file may be scanned or use font encodings that cannot be decoded", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from the PDF; the file may be image-based/scanned")
}

// splitLines flattens page texts into one trimmed line per source line.
func splitLines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		for _, ln := range strings.Split(page, "\n") {
			lines = append(lines, strings.TrimSpace(ln))
		}
	}
	return lines
}

// extractWithLibrary uses ledongthuc/pdf, trying progressively cruder
// methods. The library can panic on malformed files, hence the recover.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByContent(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByPagePlainText(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	if text := extractByReaderPlainText(r); isReadableText([]string{text}) {
		return []string{text}, nil
	}

	return pages, nil
}

// extractByRow preserves the table layout best when the PDF cooperates.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from raw text objects by grouping on
// the Y coordinate and sorting each row by X.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			if line := strings.TrimSpace(strings.Join(parts, "")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByPagePlainText decodes each page with its own font map. Catches
// statements whose text objects only decode through the per-page fonts.
func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// extractByReaderPlainText is the whole-document fallback path.
func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext shells out to poppler-utils for PDFs the Go library
// cannot handle.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, fmt.Errorf("pdftotext produced no output")
	}

	// pdftotext separates pages with form feeds.
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	return pages, nil
}

// commonWords that appear in virtually every BBVA statement. Extracted text
// containing none of these is treated as garbage.
var commonWords = []string{
	"bbva", "cuenta", "saldo", "cargo", "abono", "fecha", "periodo",
	"movimientos", "referencia", "cliente", "sucursal", "clabe",
	"total", "estado de cuenta", "tarjeta", "pago",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of readable characters to total characters.
// The accepted set includes the accented vowels and ñ that Spanish statement
// text legitimately contains.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*", r) ||
				strings.ContainsRune("áéíóúÁÉÍÓÚñÑüÜ", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// isReadableText requires enough text, a high readable-character ratio, and
// at least one recognizable statement word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
