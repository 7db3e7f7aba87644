// import_products carga productos desde un CSV con columnas name,unit,opening_stock.
// La primera fila se salta si es el encabezado. Las exportaciones de planillas en
// ISO-8859-1 se leen con -latin1.
//
// Uso: go run ./cmd/import_products [-latin1] [-dry-run] productos.csv
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/application/usecase"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-planner-api/pkg/config"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
	"github.com/jhoicas/stock-planner-api/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type row struct {
	line int
	req  dto.CreateProductRequest
}

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "validar sin escribir")
	sep := flag.String("sep", ",", "separador de columnas")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products [-latin1] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	if *sep == "" {
		*sep = ","
	}
	rows, err := readRows(in, []rune(*sep)[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	invalid := 0
	for _, r := range rows {
		if errs := validator.ValidateStruct(r.req); len(errs) > 0 {
			log.Warn().Int("line", r.line).Str("detalle", validator.Message(errs)).Msg("fila inválida")
			invalid++
		}
	}
	if *dryRun || invalid > 0 {
		log.Info().Int("rows", len(rows)).Int("invalid", invalid).Bool("dry_run", *dryRun).Msg("validación terminada")
		if invalid > 0 {
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewStockTransactionRepository(pool))
	created := 0
	for _, r := range rows {
		p, err := productUC.Create(ctx, r.req)
		if err != nil {
			log.Error().Err(err).Int("line", r.line).Str("name", r.req.Name).Msg("crear producto")
			continue
		}
		created++
		log.Debug().Int64("id", p.ID).Str("name", p.Name).Msg("producto creado")
	}
	log.Info().Int("rows", len(rows)).Int("created", created).Msg("importación terminada")
	if created < len(rows) {
		pool.Close()
		os.Exit(1)
	}
}

func readRows(in io.Reader, sep rune) ([]row, error) {
	r := csv.NewReader(in)
	r.Comma = sep
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var out []row
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos name,unit", line)
		}
		opening := decimal.Zero
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			// planillas en español usan coma decimal
			opening, err = decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
			if err != nil {
				return nil, fmt.Errorf("línea %d: opening_stock inválido %q", line, rec[2])
			}
		}
		out = append(out, row{line: line, req: dto.CreateProductRequest{
			Name:         strings.TrimSpace(rec[0]),
			Unit:         strings.TrimSpace(rec[1]),
			OpeningStock: opening,
		}})
	}
}
