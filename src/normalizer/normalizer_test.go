package normalizer

import (
	"testing"

	"github.com/username/painelvendas/backend/src/models"
)

func rawTable(columns []string, rows ...map[string]string) *models.RawTable {
	return &models.RawTable{Columns: columns, Rows: rows}
}

var baseColumns = []string{
	models.ColVendedor, models.ColDataPreVenda, models.ColPrecoVenda,
	models.ColValorFrete, models.ColUF, models.ColCliente,
}

func TestNormalizeDropsInvalidRows(t *testing.T) {
	table := rawTable(baseColumns,
		map[string]string{
			models.ColVendedor: "Ana", models.ColDataPreVenda: "05/01/2024",
			models.ColPrecoVenda: "R$ 1.234,50", models.ColUF: "SP",
		},
		map[string]string{ // empty salesperson
			models.ColVendedor: "", models.ColDataPreVenda: "06/01/2024",
			models.ColPrecoVenda: "R$ 10,00", models.ColUF: "RJ",
		},
		map[string]string{ // whitespace-only salesperson
			models.ColVendedor: "   ", models.ColDataPreVenda: "07/01/2024",
		},
		map[string]string{ // unparseable date
			models.ColVendedor: "Rui", models.ColDataPreVenda: "2024-01-08",
		},
	)

	ds := Normalize(table)
	if len(ds.Records) != 1 {
		t.Fatalf("expected 1 valid record, got %d", len(ds.Records))
	}

	rec := ds.Records[0]
	if rec.Vendedor != "Ana" {
		t.Errorf("Vendedor = %q, want Ana", rec.Vendedor)
	}
	if rec.DataBR != "05/01/2024" {
		t.Errorf("DataBR = %q, want 05/01/2024", rec.DataBR)
	}
	if y, m, d := rec.DataVenda.Date(); y != 2024 || m != 1 || d != 5 {
		t.Errorf("DataVenda = %v, want 2024-01-05", rec.DataVenda)
	}
	if rec.PrecoVenda == nil || rec.PrecoVenda.InexactFloat64() != 1234.50 {
		t.Errorf("PrecoVenda = %v, want 1234.50", rec.PrecoVenda)
	}
}

func TestNormalizeInvariant(t *testing.T) {
	table := rawTable(baseColumns,
		map[string]string{models.ColVendedor: "A", models.ColDataPreVenda: "01/02/2024"},
		map[string]string{models.ColVendedor: "", models.ColDataPreVenda: "01/02/2024"},
		map[string]string{models.ColVendedor: "B", models.ColDataPreVenda: "bogus"},
		map[string]string{models.ColVendedor: "C", models.ColDataPreVenda: "29/02/2024"},
	)

	ds := Normalize(table)
	for _, rec := range ds.Records {
		if rec.Vendedor == "" {
			t.Error("normalized dataset contains a record with empty salesperson")
		}
		if rec.DataVenda.IsZero() {
			t.Error("normalized dataset contains a record with zero sale date")
		}
	}
	if len(ds.Records) != 2 {
		t.Errorf("expected 2 valid records, got %d", len(ds.Records))
	}
}

func TestNormalizeUnparseableAmountsBecomeNil(t *testing.T) {
	table := rawTable(baseColumns,
		map[string]string{
			models.ColVendedor: "Ana", models.ColDataPreVenda: "05/01/2024",
			models.ColPrecoVenda: "n/d", models.ColValorFrete: "",
		},
	)

	ds := Normalize(table)
	if len(ds.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(ds.Records))
	}
	if ds.Records[0].PrecoVenda != nil {
		t.Errorf("unparseable price should be nil, got %v", ds.Records[0].PrecoVenda)
	}
	if ds.Records[0].ValorFrete != nil {
		t.Errorf("missing freight should be nil, got %v", ds.Records[0].ValorFrete)
	}
}

func TestNormalizeOptionalColumns(t *testing.T) {
	withOptional := append(append([]string{}, baseColumns...), models.ColTipoPessoa, models.ColFormaPagamento)
	table := rawTable(withOptional,
		map[string]string{
			models.ColVendedor: "Ana", models.ColDataPreVenda: "05/01/2024",
			models.ColTipoPessoa: "F", models.ColFormaPagamento: "CARTÃO CRÉDITO",
		},
	)

	ds := Normalize(table)
	if !ds.HasTipoPessoa || !ds.HasFormaPagamento {
		t.Fatal("optional column presence flags not set")
	}
	if ds.Records[0].TipoPessoa != "F" {
		t.Errorf("TipoPessoa = %q, want F", ds.Records[0].TipoPessoa)
	}
	if ds.Records[0].FormaPagamento != "CARTÃO CRÉDITO" {
		t.Errorf("FormaPagamento = %q", ds.Records[0].FormaPagamento)
	}

	noOptional := Normalize(rawTable(baseColumns,
		map[string]string{models.ColVendedor: "Ana", models.ColDataPreVenda: "05/01/2024"},
	))
	if noOptional.HasTipoPessoa || noOptional.HasFormaPagamento {
		t.Error("presence flags set for columns the file does not have")
	}
}
