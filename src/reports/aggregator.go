package reports

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/utils"
)

// TopClientesDefault is how many rows the top-customers table shows.
const TopClientesDefault = 10

// Build computes every KPI and report the dashboard renders from one
// filtered dataset. Everything is recomputed in full on each call; the
// working set is one CSV snapshot, so there is nothing worth memoizing.
func Build(ds models.Dataset) models.DashboardReport {
	return models.DashboardReport{
		KPIs:                 KPIs(ds),
		FaturamentoVendedor:  RevenueBySalesperson(ds),
		FaturamentoMes:       RevenueByMonth(ds),
		TendenciaFaturamento: RevenueTrend(ds),
		FormasPagamento:      PaymentMethodBreakdown(ds),
		FaturamentoUF:        RevenueByState(ds),
		TopClientes:          TopCustomers(ds, TopClientesDefault),
	}
}

// KPIs computes the headline metrics. Nil amounts are excluded from sums,
// they never count as zero.
func KPIs(ds models.Dataset) models.KPISet {
	revenue := decimal.Zero
	freight := decimal.Zero
	clientes := make(map[string]bool)

	for _, rec := range ds.Records {
		if rec.PrecoVenda != nil {
			revenue = revenue.Add(*rec.PrecoVenda)
		}
		if rec.ValorFrete != nil {
			freight = freight.Add(*rec.ValorFrete)
		}
		if rec.Cliente != "" {
			clientes[rec.Cliente] = true
		}
	}

	return models.KPISet{
		TotalPedidos:     len(ds.Records),
		ValorFaturado:    toAmount(revenue),
		ValorFaturadoBRL: utils.FormatBRL(revenue),
		FreteTotal:       toAmount(freight),
		FreteTotalBRL:    utils.FormatBRL(freight),
		ClientesUnicos:   len(clientes),
	}
}

// RevenueBySalesperson sums sale prices per salesperson, highest first.
func RevenueBySalesperson(ds models.Dataset) []models.RevenuePoint {
	return revenueBy(ds, func(r models.Record) string { return r.Vendedor }, byTotalDesc)
}

// RevenueByMonth sums sale prices per calendar month (YYYY-MM), in
// chronological order.
func RevenueByMonth(ds models.Dataset) []models.RevenuePoint {
	return revenueBy(ds, func(r models.Record) string { return r.DataVenda.Format("2006-01") }, byLabelAsc)
}

// RevenueByState sums sale prices per UF, highest first.
func RevenueByState(ds models.Dataset) []models.RevenuePoint {
	return revenueBy(ds, func(r models.Record) string { return r.UF }, byTotalDesc)
}

// RevenueTrend sums sale prices per calendar day present in the dataset,
// in chronological order.
func RevenueTrend(ds models.Dataset) []models.TrendPoint {
	points := revenueBy(ds, func(r models.Record) string { return r.DataVenda.Format(utils.DateFormatISO) }, byLabelAsc)

	trend := make([]models.TrendPoint, len(points))
	for i, p := range points {
		trend[i] = models.TrendPoint{Date: p.Label, Total: p.Total}
	}
	return trend
}

// PaymentMethodBreakdown counts orders per distinct payment description.
func PaymentMethodBreakdown(ds models.Dataset) []models.PaymentSlice {
	if !ds.HasFormaPagamento {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, rec := range ds.Records {
		if rec.FormaPagamento == "" {
			continue // empty cell, not a payment method
		}
		if _, seen := counts[rec.FormaPagamento]; !seen {
			order = append(order, rec.FormaPagamento)
		}
		counts[rec.FormaPagamento]++
	}

	slices := make([]models.PaymentSlice, 0, len(order))
	for _, forma := range order {
		slices = append(slices, models.PaymentSlice{FormaPagamento: forma, Pedidos: counts[forma]})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Pedidos > slices[j].Pedidos })
	return slices
}

// TopCustomers aggregates sale price, freight and order count per customer,
// sorted by summed sale price descending, truncated to n rows. Ties keep
// first-appearance order. Records with no customer identifier are left out.
func TopCustomers(ds models.Dataset, n int) []models.CustomerSummary {
	type acc struct {
		vendas  decimal.Decimal
		frete   decimal.Decimal
		pedidos int
	}

	sums := make(map[string]*acc)
	var order []string
	for _, rec := range ds.Records {
		if rec.Cliente == "" {
			continue
		}
		a, ok := sums[rec.Cliente]
		if !ok {
			a = &acc{}
			sums[rec.Cliente] = a
			order = append(order, rec.Cliente)
		}
		if rec.PrecoVenda != nil {
			a.vendas = a.vendas.Add(*rec.PrecoVenda)
		}
		if rec.ValorFrete != nil {
			a.frete = a.frete.Add(*rec.ValorFrete)
		}
		a.pedidos++
	}

	rows := make([]models.CustomerSummary, 0, len(order))
	for _, cliente := range order {
		a := sums[cliente]
		rows = append(rows, models.CustomerSummary{
			Cliente:     cliente,
			TotalVendas: toAmount(a.vendas),
			TotalFrete:  toAmount(a.frete),
			Pedidos:     a.pedidos,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalVendas > rows[j].TotalVendas })
	return rows[:utils.MinInt(n, len(rows))]
}

type sortOrder int

const (
	byTotalDesc sortOrder = iota
	byLabelAsc
)

// revenueBy groups records by the given key and sums their non-nil sale
// prices. A group whose every price is nil still shows up, with total zero.
func revenueBy(ds models.Dataset, key func(models.Record) string, order sortOrder) []models.RevenuePoint {
	sums := make(map[string]decimal.Decimal)
	var seen []string
	for _, rec := range ds.Records {
		k := key(rec)
		if _, ok := sums[k]; !ok {
			seen = append(seen, k)
			sums[k] = decimal.Zero
		}
		if rec.PrecoVenda != nil {
			sums[k] = sums[k].Add(*rec.PrecoVenda)
		}
	}

	points := make([]models.RevenuePoint, 0, len(seen))
	for _, k := range seen {
		points = append(points, models.RevenuePoint{Label: k, Total: toAmount(sums[k])})
	}

	switch order {
	case byTotalDesc:
		sort.SliceStable(points, func(i, j int) bool { return points[i].Total > points[j].Total })
	case byLabelAsc:
		sort.SliceStable(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	}
	return points
}

func toAmount(d decimal.Decimal) float64 {
	return utils.RoundFloat(d.InexactFloat64(), 2)
}
