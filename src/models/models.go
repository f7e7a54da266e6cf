package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source column names expected in the remote CSV export.
const (
	ColVendedor       = "VENDEDOR"
	ColDataPreVenda   = "DATAPREVENDA"
	ColPrecoVenda     = "PRECOVENDA"
	ColValorFrete     = "VALORFRETE"
	ColUF             = "ENDUF1"
	ColCliente        = "RAZAOSOCIAL_NOME"
	ColTipoPessoa     = "Tipo de Pessoa"
	ColFormaPagamento = "DSCFORMAPAG_PRINCIPAL"
)

// RawTable is the Loader's output: the CSV snapshot as text, keyed by the
// trimmed column names. No typing or validation has happened yet.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the source file carried the given column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Record is one validated sales transaction. After the Normalizer runs,
// Vendedor is never empty and DataVenda is always a valid date. Monetary
// amounts are nil when the source text could not be parsed; sums must skip
// nil amounts rather than treat them as zero.
type Record struct {
	Vendedor       string           `json:"vendedor"`
	DataVenda      time.Time        `json:"data_venda"`
	DataBR         string           `json:"data_br"` // DD/MM/YYYY display form of DataVenda
	PrecoVenda     *decimal.Decimal `json:"preco_venda"`
	ValorFrete     *decimal.Decimal `json:"valor_frete"`
	UF             string           `json:"uf"`
	Cliente        string           `json:"cliente"`
	TipoPessoa     string           `json:"tipo_pessoa,omitempty"`
	FormaPagamento string           `json:"forma_pagamento,omitempty"`
}

// Dataset is the cleaned collection of records for one session. The Has*
// flags record whether the optional source columns were present at all,
// which decides whether the matching filters apply.
type Dataset struct {
	Records           []Record
	HasTipoPessoa     bool
	HasFormaPagamento bool
}

// FilterCriteria is the immutable predicate bundle built per interaction.
// The sets are always populated before Apply runs: default criteria select
// every distinct value, and an empty set means the user deliberately cleared
// the selection, so nothing matches.
type FilterCriteria struct {
	StartDate     time.Time
	EndDate       time.Time
	UFs           map[string]bool
	TiposPessoa   map[string]bool
	ExcludePagtos string // records whose payment description contains this substring are dropped
}
