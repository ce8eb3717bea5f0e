package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/movsmx/bbva-statement-extractor/internal/api"
	"github.com/movsmx/bbva-statement-extractor/internal/extractor"
	"github.com/movsmx/bbva-statement-extractor/internal/models"
	"github.com/movsmx/bbva-statement-extractor/internal/parser"
	"github.com/movsmx/bbva-statement-extractor/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	cuentaFlag := flag.String("cuenta", "", "Account type: debito, credito (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format's extension)")
	formatFlag := flag.String("format", "xlsx", "Output format: xlsx or csv")
	headerFlag := flag.Bool("header", true, "Include statement metadata rows in CSV output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP conversion API instead of converting files")
	portFlag := flag.String("port", "", "Port for --serve (defaults to PORT env var, then 8080)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `BBVA Statement Extractor

Converts BBVA México account statement PDFs (débito and crédito layouts)
into structured Excel workbooks or CSV files.

Usage:
  bbva-statement-extractor [flags] <input.pdf> [input2.pdf ...]
  bbva-statement-extractor --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect the account type and write movs.xlsx
  bbva-statement-extractor --output=movs.xlsx estado_de_cuenta.pdf

  # Débito statement to CSV
  bbva-statement-extractor --cuenta=debito --format=csv enero.pdf

  # Convert several statements
  bbva-statement-extractor --cuenta=credito ene.pdf feb.pdf mar.pdf

  # Run the upload API on port 8080
  bbva-statement-extractor --serve

Account types:
  debito    - cuenta de débito (DD/MMM dates, Cargo/Abono columns)
  credito   - tarjeta de crédito (DD-Mon-YYYY dates, signed amounts)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("bbva-statement-extractor v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		runServer(*portFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	var account models.AccountType
	if *cuentaFlag != "" {
		switch strings.ToLower(*cuentaFlag) {
		case "debito", "débito":
			account = models.AccountDebito
		case "credito", "crédito":
			account = models.AccountCredito
		default:
			fatalf("Unknown account type %q. Supported: debito, credito\n", *cuentaFlag)
		}
	}

	format := strings.ToLower(*formatFlag)
	if format != "xlsx" && format != "csv" {
		fatalf("Unknown output format %q. Supported: xlsx, csv\n", *formatFlag)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, account, *outputFlag, format, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, account models.AccountType, outputPath, format string, includeHeader bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	lines, err := extractor.ExtractLines(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}

	fmt.Printf("  Extracted %d line(s)\n", len(lines))

	effective := account
	if effective == "" {
		detected, err := parser.AutoDetect(lines)
		if err != nil {
			return err
		}
		effective = detected
		fmt.Printf("  Auto-detected account type: %s\n", effective)
	}

	p, err := parser.New(effective)
	if err != nil {
		return err
	}

	fmt.Printf("  Using %s parser\n", p.AccountName())

	info, err := p.Parse(lines)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	fmt.Printf("  Found %d movement(s)\n", len(info.Movimientos))

	if len(info.Movimientos) == 0 {
		fmt.Println("  Warning: No movements found. The statement layout may not match expected patterns.")
		fmt.Println("  Try specifying the account type explicitly with --cuenta if auto-detection was used.")
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: includeHeader, IncludeTotals: true}
		if err := w.WriteToFile(outPath, info); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	default:
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, info); err != nil {
			return fmt.Errorf("workbook write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)

	if info.Titular != "" {
		fmt.Printf("  Titular: %s\n", info.Titular)
	}
	if info.NumCuenta != "" {
		fmt.Printf("  No. de cuenta: %s\n", info.NumCuenta)
	}
	if info.Periodo != "" {
		fmt.Printf("  Periodo: %s\n", info.Periodo)
	}

	totals := parser.Sum(effective, info.Movimientos)
	fmt.Printf("  Total cargos: $%s\n", totals.TotalCargos.StringFixed(2))
	fmt.Printf("  Total abonos: $%s\n", totals.TotalAbonos.StringFixed(2))

	fmt.Println("  Done.")
	return nil
}

func runServer(portFlag string) {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	port := portFlag
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	app := fiber.New(fiber.Config{
		AppName:   "bbva-statement-extractor v" + version,
		BodyLimit: 32 << 20,
	})
	app.Use(logger.New())
	api.RegisterRoutes(app)

	if staticDir := os.Getenv("STATIC_DIR"); staticDir != "" {
		app.Static("/", staticDir)
	}

	fmt.Printf("Listening on :%s\n", port)
	if err := app.Listen(":" + port); err != nil {
		fatalf("server error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
