package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/username/painelvendas/backend/src/models"
)

func TestExportCSV(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		rec("ACME LTDA", "2024-01-05", 1234.50),
		rec("JOÃO ME", "2024-01-06", 10),
	}}
	ds.Records[1].PrecoVenda = nil
	frete := decimal.NewFromFloat(5)
	ds.Records[0].ValorFrete = &frete

	data, err := ExportCSV(ds)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("export must start with a UTF-8 byte-order mark")
	}

	r := csv.NewReader(bytes.NewReader(data[3:])) // comma-delimited, per csv defaults
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading export back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "VENDEDOR,DATAPREVENDA,DATA_BR,PRECOVENDA,VALORFRETE,ENDUF1,RAZAOSOCIAL_NOME" {
		t.Errorf("unexpected header: %s", header)
	}

	first := rows[1]
	if first[1] != "2024-01-05" || first[2] != "05/01/2024" {
		t.Errorf("date cells = %q / %q", first[1], first[2])
	}
	if first[3] != "1234.50" || first[4] != "5.00" {
		t.Errorf("amount cells = %q / %q, want 1234.50 / 5.00", first[3], first[4])
	}

	second := rows[2]
	if second[3] != "" {
		t.Errorf("nil price must export as an empty cell, got %q", second[3])
	}
	if second[6] != "JOÃO ME" {
		t.Errorf("customer cell = %q, want JOÃO ME (UTF-8)", second[6])
	}
}

func TestExportCSVOptionalColumns(t *testing.T) {
	ds := models.Dataset{
		HasTipoPessoa:     true,
		HasFormaPagamento: true,
		Records:           []models.Record{rec("ACME", "2024-01-05", 1)},
	}
	ds.Records[0].TipoPessoa = "J"
	ds.Records[0].FormaPagamento = "PIX"

	data, err := ExportCSV(ds)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(data[3:]))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading export back: %v", err)
	}
	if got := len(rows[0]); got != 9 {
		t.Fatalf("expected 9 columns with optionals, got %d", got)
	}
	if rows[0][7] != models.ColTipoPessoa || rows[0][8] != models.ColFormaPagamento {
		t.Errorf("optional headers = %q, %q", rows[0][7], rows[0][8])
	}
	if rows[1][7] != "J" || rows[1][8] != "PIX" {
		t.Errorf("optional cells = %q, %q", rows[1][7], rows[1][8])
	}
}
