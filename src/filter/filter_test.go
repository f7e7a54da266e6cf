package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/painelvendas/backend/src/models"
)

func day(d string) time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(vendedor, date, uf string, price float64) models.Record {
	p := decimal.NewFromFloat(price)
	return models.Record{
		Vendedor:   vendedor,
		DataVenda:  day(date),
		DataBR:     day(date).Format("02/01/2006"),
		PrecoVenda: &p,
		UF:         uf,
		Cliente:    vendedor + " LTDA",
	}
}

func sampleDataset() models.Dataset {
	return models.Dataset{
		Records: []models.Record{
			rec("Ana", "2024-01-05", "SP", 100),
			rec("Bia", "2024-01-10", "RJ", 200),
			rec("Caio", "2024-02-01", "SP", 50),
			rec("Dudu", "2024-03-15", "MG", 300),
		},
	}
}

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria(sampleDataset())

	if !c.StartDate.Equal(day("2024-01-05")) {
		t.Errorf("StartDate = %v, want 2024-01-05", c.StartDate)
	}
	if !c.EndDate.Equal(day("2024-03-15")) {
		t.Errorf("EndDate = %v, want 2024-03-15", c.EndDate)
	}
	for _, uf := range []string{"SP", "RJ", "MG"} {
		if !c.UFs[uf] {
			t.Errorf("default criteria missing UF %s", uf)
		}
	}
	if len(c.UFs) != 3 {
		t.Errorf("expected 3 distinct UFs, got %d", len(c.UFs))
	}
}

func TestApplyDefaultKeepsEverything(t *testing.T) {
	ds := sampleDataset()
	out := Apply(ds, DefaultCriteria(ds))
	if len(out.Records) != len(ds.Records) {
		t.Errorf("default criteria filtered records: got %d, want %d", len(out.Records), len(ds.Records))
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	ds := sampleDataset()
	c := DefaultCriteria(ds)
	c.StartDate = day("2024-01-10")
	c.EndDate = day("2024-02-01")

	out := Apply(ds, c)
	if len(out.Records) != 2 {
		t.Fatalf("expected 2 records in [2024-01-10, 2024-02-01], got %d", len(out.Records))
	}
	if out.Records[0].Vendedor != "Bia" || out.Records[1].Vendedor != "Caio" {
		t.Errorf("boundary dates must be included, got %v, %v", out.Records[0].Vendedor, out.Records[1].Vendedor)
	}
}

func TestApplyEmptyUFSetMatchesNothing(t *testing.T) {
	ds := sampleDataset()
	c := DefaultCriteria(ds)
	c.UFs = map[string]bool{}

	if out := Apply(ds, c); len(out.Records) != 0 {
		t.Errorf("empty UF set must yield zero records, got %d", len(out.Records))
	}
}

func TestApplyUFSubset(t *testing.T) {
	ds := sampleDataset()
	c := DefaultCriteria(ds)
	c.UFs = map[string]bool{"SP": true}

	out := Apply(ds, c)
	if len(out.Records) != 2 {
		t.Fatalf("expected 2 SP records, got %d", len(out.Records))
	}
	for _, r := range out.Records {
		if r.UF != "SP" {
			t.Errorf("record with UF %q passed an SP-only filter", r.UF)
		}
	}
}

func TestApplyPaymentExclusion(t *testing.T) {
	ds := models.Dataset{
		HasFormaPagamento: true,
		Records: []models.Record{
			rec("Ana", "2024-01-05", "SP", 100),
			rec("Bia", "2024-01-06", "SP", 200),
		},
	}
	ds.Records[0].FormaPagamento = "CARTÃO CRÉDITO"
	ds.Records[1].FormaPagamento = "BOLETO"

	c := DefaultCriteria(ds)
	c.ExcludePagtos = "CARTÃO"

	out := Apply(ds, c)
	if len(out.Records) != 1 || out.Records[0].Vendedor != "Bia" {
		t.Fatalf("expected only Bia after excluding CARTÃO, got %d records", len(out.Records))
	}

	// Matching is case-sensitive: a lowercase needle excludes nothing.
	c.ExcludePagtos = "cartão"
	if out := Apply(ds, c); len(out.Records) != 2 {
		t.Errorf("lowercase exclusion should not match, got %d records", len(out.Records))
	}
}

func TestApplyTipoPessoaOnlyWhenPresent(t *testing.T) {
	ds := sampleDataset()
	c := DefaultCriteria(ds)
	c.TiposPessoa = map[string]bool{} // would match nothing, if the column existed

	if out := Apply(ds, c); len(out.Records) != len(ds.Records) {
		t.Errorf("person-type filter must be ignored when the column is absent, got %d records", len(out.Records))
	}

	ds.HasTipoPessoa = true
	if out := Apply(ds, c); len(out.Records) != 0 {
		t.Errorf("empty person-type set must match nothing when the column exists, got %d records", len(out.Records))
	}
}

func TestApplyIdempotent(t *testing.T) {
	ds := sampleDataset()
	c := DefaultCriteria(ds)
	c.StartDate = day("2024-01-01")
	c.EndDate = day("2024-02-28")
	c.UFs = map[string]bool{"SP": true, "RJ": true}

	once := Apply(ds, c)
	twice := Apply(once, c)
	if len(once.Records) != len(twice.Records) {
		t.Fatalf("re-applying the same criteria changed the result: %d vs %d", len(once.Records), len(twice.Records))
	}
	for i := range once.Records {
		if once.Records[i].Vendedor != twice.Records[i].Vendedor {
			t.Errorf("record %d differs after re-filtering", i)
		}
	}
}
