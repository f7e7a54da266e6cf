package models

// KPISet carries the four headline metrics. Monetary values appear both as
// raw numbers and already formatted in the Brazilian convention; formatting
// never feeds back into stored amounts.
type KPISet struct {
	TotalPedidos     int     `json:"total_pedidos"`
	ValorFaturado    float64 `json:"valor_faturado"`
	ValorFaturadoBRL string  `json:"valor_faturado_brl"`
	FreteTotal       float64 `json:"frete_total"`
	FreteTotalBRL    string  `json:"frete_total_brl"`
	ClientesUnicos   int     `json:"clientes_unicos"`
}

// RevenuePoint is one bar of a grouped revenue chart (vendedor, UF, mês).
type RevenuePoint struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// TrendPoint is one day of the revenue trend line.
type TrendPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Total float64 `json:"total"`
}

// PaymentSlice is one slice of the payment-method pie.
type PaymentSlice struct {
	FormaPagamento string `json:"forma_pagamento"`
	Pedidos        int    `json:"pedidos"`
}

// CustomerSummary is one row of the top-customers table.
type CustomerSummary struct {
	Cliente     string  `json:"cliente"`
	TotalVendas float64 `json:"total_vendas"`
	TotalFrete  float64 `json:"total_frete"`
	Pedidos     int     `json:"pedidos"`
}

// DashboardReport is the full payload rendered by the presentation adapter:
// KPI widgets, every chart series, and the top-customers table.
type DashboardReport struct {
	KPIs                 KPISet            `json:"kpis"`
	FaturamentoVendedor  []RevenuePoint    `json:"faturamento_por_vendedor"`
	FaturamentoMes       []RevenuePoint    `json:"faturamento_por_mes"`
	TendenciaFaturamento []TrendPoint      `json:"tendencia_faturamento"`
	FormasPagamento      []PaymentSlice    `json:"formas_pagamento"`
	FaturamentoUF        []RevenuePoint    `json:"faturamento_por_uf"`
	TopClientes          []CustomerSummary `json:"top_clientes"`
}

// FilterOptions describes the selectable filter space of a Dataset, used by
// the UI to build its widgets and as the source of default criteria.
type FilterOptions struct {
	DataInicial string   `json:"data_inicial"` // YYYY-MM-DD
	DataFinal   string   `json:"data_final"`
	UFs         []string `json:"ufs"`
	TiposPessoa []string `json:"tipos_pessoa,omitempty"`
}
