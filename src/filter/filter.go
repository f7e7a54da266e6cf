package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/utils"
)

// DefaultCriteria builds the criteria a fresh session starts with: the full
// date range of the dataset and every distinct value selected.
func DefaultCriteria(ds models.Dataset) models.FilterCriteria {
	c := models.FilterCriteria{
		UFs:         make(map[string]bool),
		TiposPessoa: make(map[string]bool),
	}

	for i, rec := range ds.Records {
		if i == 0 || rec.DataVenda.Before(c.StartDate) {
			c.StartDate = rec.DataVenda
		}
		if i == 0 || rec.DataVenda.After(c.EndDate) {
			c.EndDate = rec.DataVenda
		}
		if rec.UF != "" {
			c.UFs[rec.UF] = true
		}
		if ds.HasTipoPessoa && rec.TipoPessoa != "" {
			c.TiposPessoa[rec.TipoPessoa] = true
		}
	}
	return c
}

// Options describes the selectable filter space for the UI widgets.
func Options(ds models.Dataset) models.FilterOptions {
	c := DefaultCriteria(ds)

	opts := models.FilterOptions{
		UFs: sortedKeys(c.UFs),
	}
	if len(ds.Records) > 0 {
		opts.DataInicial = c.StartDate.Format(utils.DateFormatISO)
		opts.DataFinal = c.EndDate.Format(utils.DateFormatISO)
	}
	if ds.HasTipoPessoa {
		opts.TiposPessoa = sortedKeys(c.TiposPessoa)
	}
	return opts
}

// Apply restricts the dataset to the records matching every predicate. It is
// a pure function: the result shares record values with the input and the
// input is never mutated. An empty allowed set matches nothing.
func Apply(ds models.Dataset, c models.FilterCriteria) models.Dataset {
	out := models.Dataset{
		HasTipoPessoa:     ds.HasTipoPessoa,
		HasFormaPagamento: ds.HasFormaPagamento,
	}

	for _, rec := range ds.Records {
		if !withinRange(rec.DataVenda, c.StartDate, c.EndDate) {
			continue
		}
		if !c.UFs[rec.UF] {
			continue
		}
		if ds.HasTipoPessoa && !c.TiposPessoa[rec.TipoPessoa] {
			continue
		}
		if ds.HasFormaPagamento && c.ExcludePagtos != "" &&
			strings.Contains(rec.FormaPagamento, c.ExcludePagtos) {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// withinRange is inclusive at both ends.
func withinRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
