package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/painelvendas/backend/src/logger"
	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/utils"
)

// Normalize turns the Loader's raw table into a clean Dataset.
//
// Rows with an empty salesperson or an unparseable sale date are dropped
// silently; the rejection only shows up in the reduced row count. Monetary
// fields that fail to parse become nil (never zero), for both price and
// freight, so every sum downstream excludes them the same way.
func Normalize(table *models.RawTable) models.Dataset {
	ds := models.Dataset{
		HasTipoPessoa:     table.HasColumn(models.ColTipoPessoa),
		HasFormaPagamento: table.HasColumn(models.ColFormaPagamento),
	}

	dropped := 0
	for _, row := range table.Rows {
		vendedor := strings.TrimSpace(row[models.ColVendedor])
		if vendedor == "" {
			dropped++
			continue
		}

		dataVenda, err := utils.ParseDateBR(row[models.ColDataPreVenda])
		if err != nil {
			dropped++
			continue
		}

		rec := models.Record{
			Vendedor:   vendedor,
			DataVenda:  dataVenda,
			DataBR:     dataVenda.Format(utils.DateFormatBR),
			PrecoVenda: parseAmount(row[models.ColPrecoVenda]),
			ValorFrete: parseAmount(row[models.ColValorFrete]),
			UF:         strings.TrimSpace(row[models.ColUF]),
			Cliente:    strings.TrimSpace(row[models.ColCliente]),
		}
		if ds.HasTipoPessoa {
			rec.TipoPessoa = strings.TrimSpace(row[models.ColTipoPessoa])
		}
		if ds.HasFormaPagamento {
			rec.FormaPagamento = row[models.ColFormaPagamento]
		}
		ds.Records = append(ds.Records, rec)
	}

	if dropped > 0 && logger.L != nil {
		logger.L.Debug("Normalizer dropped invalid rows", "dropped", dropped, "kept", len(ds.Records))
	}
	return ds
}

// parseAmount returns nil on unparseable currency text, never an error.
func parseAmount(s string) *decimal.Decimal {
	d, err := utils.ParseBRL(s)
	if err != nil {
		return nil
	}
	return &d
}
