package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/movsmx/bbva-statement-extractor/internal/extractor"
	"github.com/movsmx/bbva-statement-extractor/internal/models"
	"github.com/movsmx/bbva-statement-extractor/internal/parser"
	"github.com/movsmx/bbva-statement-extractor/internal/writer"
)

const version = "1.0.0"

// pageBreak separates pages in the extractedText form field when the client
// does its own PDF text extraction.
const pageBreak = "---PAGE_BREAK---"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	Cuenta      string            `json:"cuenta,omitempty"`
	Titular     string            `json:"titular,omitempty"`
	NumCuenta   string            `json:"numCuenta,omitempty"`
	Periodo     string            `json:"periodo,omitempty"`
	Movimientos []models.Movement `json:"movimientos"`
	Totales     *models.Totals    `json:"totales,omitempty"`
	CSV         string            `json:"csv,omitempty"`
	Count       int               `json:"count"`
	RawText     string            `json:"rawText,omitempty"`
	Version     string            `json:"version,omitempty"`
}

// RegisterRoutes sets up the API routes on the fiber app. CORS is open so
// the browser frontend can upload statements cross-origin.
func RegisterRoutes(app *fiber.App) {
	app.Use(cors.New())
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert accepts a statement PDF (or pre-extracted text) and returns
// the parsed movements, totals, and a CSV rendition.
func HandleConvert(c *fiber.Ctx) error {
	lines, err := requestLines(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, fe.Code, fe.Message)
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	account := models.AccountType(strings.ToLower(c.FormValue("cuenta")))
	switch account {
	case "":
		detected, err := parser.AutoDetect(lines)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		account = detected
	case models.AccountDebito, models.AccountCredito:
	default:
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Unknown account type %q. Use debito or credito.", account))
	}

	p, err := parser.New(account)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	info, err := p.Parse(lines)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	rawText := strings.Join(lines, "\n")

	if len(info.Movimientos) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ConvertResponse{
			Success:     false,
			Error:       "No movements found. The statement layout may not match the selected account type.",
			Cuenta:      string(account),
			Movimientos: []models.Movement{},
			RawText:     rawText,
			Version:     version,
		})
	}

	var csvBuf bytes.Buffer
	cw := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := cw.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	totals := parser.Sum(account, info.Movimientos)

	return c.JSON(ConvertResponse{
		Success:     true,
		Cuenta:      string(account),
		Titular:     info.Titular,
		NumCuenta:   info.NumCuenta,
		Periodo:     info.Periodo,
		Movimientos: info.Movimientos,
		Totales:     &totals,
		CSV:         csvBuf.String(),
		Count:       len(info.Movimientos),
		RawText:     rawText,
		Version:     version,
	})
}

// requestLines resolves the input line sequence: pre-extracted text from the
// client when present, otherwise server-side extraction of the uploaded PDF.
func requestLines(c *fiber.Ctx) ([]string, error) {
	if extracted := c.FormValue("extractedText"); extracted != "" {
		var lines []string
		for _, page := range strings.Split(extracted, pageBreak) {
			for _, ln := range strings.Split(strings.TrimSpace(page), "\n") {
				lines = append(lines, strings.TrimSpace(ln))
			}
		}
		return lines, nil
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmp, err := os.CreateTemp("", "estado-cuenta-*.pdf")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveFile(file, tmp.Name()); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	lines, err := extractor.ExtractLines(tmp.Name())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}
	return lines, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:     false,
		Error:       msg,
		Movimientos: []models.Movement{},
		Version:     version,
	})
}
