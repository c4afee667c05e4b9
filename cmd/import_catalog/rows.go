package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/petshop-api/internal/application/dto"
)

// columnas esperadas en la cabecera (orden libre, nombres sin distinguir mayúsculas)
var requiredColumns = []string{"nombre", "categoria", "costo", "precio"}

// catalogRow una fila del archivo ya interpretada.
type catalogRow struct {
	Line     int
	Category string
	Product  dto.CreateProductRequest
}

// readRows lee un CSV separado por ';' (formato de planilla local). Con latin1 el archivo se
// decodifica desde ISO-8859-1, que es como lo exportan los sistemas de caja antiguos.
func readRows(r io.Reader, latin1 bool) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var rows []catalogRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("nombre") == "" {
			continue
		}
		row := catalogRow{Line: line, Category: get("categoria")}
		row.Product = dto.CreateProductRequest{
			Name:        get("nombre"),
			Barcode:     get("codigo"),
			UnitMeasure: get("unidad"),
			Notes:       get("notas"),
			Weighable:   strings.EqualFold(get("granel"), "si") || strings.EqualFold(get("granel"), "sim"),
		}
		for _, f := range []struct {
			col  string
			dest *decimal.Decimal
		}{
			{"costo", &row.Product.PurchaseCost},
			{"precio", &row.Product.SalePrice},
			{"minimo", &row.Product.MinStock},
			{"stock", &row.Product.InitialStock},
		} {
			v, err := parseAmount(get(f.col))
			if err != nil {
				return nil, fmt.Errorf("línea %d, columna %s: %w", line, f.col, err)
			}
			*f.dest = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseAmount acepta "1.234,50", "1234,50" y "1234.50". Vacío es cero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
