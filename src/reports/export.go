package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/utils"
)

// ExportFilename is the download name offered to the browser.
const ExportFilename = "dados_filtrados.csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV renders the filtered dataset as a comma-delimited, UTF-8 CSV
// with a byte-order mark, the format spreadsheet tools open cleanly. The
// semicolon-delimited Latin-1 source format is not preserved. Amounts are
// written with a dot decimal separator; nil amounts become empty cells.
func ExportCSV(ds models.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)

	header := []string{
		models.ColVendedor, models.ColDataPreVenda, "DATA_BR",
		models.ColPrecoVenda, models.ColValorFrete,
		models.ColUF, models.ColCliente,
	}
	if ds.HasTipoPessoa {
		header = append(header, models.ColTipoPessoa)
	}
	if ds.HasFormaPagamento {
		header = append(header, models.ColFormaPagamento)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing export header: %w", err)
	}

	for _, rec := range ds.Records {
		row := []string{
			rec.Vendedor,
			rec.DataVenda.Format(utils.DateFormatISO),
			rec.DataBR,
			amountCell(rec.PrecoVenda),
			amountCell(rec.ValorFrete),
			rec.UF,
			rec.Cliente,
		}
		if ds.HasTipoPessoa {
			row = append(row, rec.TipoPessoa)
		}
		if ds.HasFormaPagamento {
			row = append(row, rec.FormaPagamento)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing export: %w", err)
	}
	return buf.Bytes(), nil
}

func amountCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
