package pricing

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

func obs(store string, price domain.Money) domain.PriceObservation {
	return domain.NewPriceObservation("p1", store, price)
}

// randomObservations генерирует наблюдения с узким диапазоном цен, чтобы часто возникали равенства.
func randomObservations(rng *rand.Rand) []domain.PriceObservation {
	n := rng.Intn(12)
	out := make([]domain.PriceObservation, n)
	for i := range out {
		out[i] = obs(string(rune('A'+i)), domain.Money(rng.Intn(5)*25))
	}
	return out
}

func TestSelectLowest_Empty(t *testing.T) {
	if _, ok := SelectLowest(nil); ok {
		t.Error("expected absent result for nil input")
	}
	if _, ok := SelectLowest([]domain.PriceObservation{}); ok {
		t.Error("expected absent result for empty input")
	}
}

func TestSelectLowest_TieKeepsFirst(t *testing.T) {
	input := []domain.PriceObservation{
		obs("Tesco", 250),
		obs("Asda", 199),
		obs("Lidl", 199),
		obs("Aldi", 300),
	}

	got, ok := SelectLowest(input)
	if !ok {
		t.Fatal("expected a result")
	}
	if got.Store != "Asda" || got.Price != 199 {
		t.Errorf("expected Asda 199, got %s %d", got.Store, got.Price)
	}
}

func TestSelectLowest_SkipsInvalid(t *testing.T) {
	input := []domain.PriceObservation{
		obs("Broken", -1),
		obs("Tesco", 150),
	}

	got, ok := SelectLowest(input)
	if !ok || got.Store != "Tesco" {
		t.Errorf("expected Tesco, got %+v (ok=%v)", got, ok)
	}

	if _, ok := SelectLowest([]domain.PriceObservation{obs("Broken", -5)}); ok {
		t.Error("expected absent result when every observation is invalid")
	}
}

func TestSelectLowest_IsMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		input := randomObservations(rng)
		got, ok := SelectLowest(input)
		if len(input) == 0 {
			if ok {
				t.Fatalf("expected absent for empty input")
			}
			continue
		}
		if !ok {
			t.Fatalf("expected a result for %v", input)
		}
		for _, o := range input {
			if got.Price > o.Price {
				t.Fatalf("selected %d but %d exists in %v", got.Price, o.Price, input)
			}
		}
	}
}

func TestBuildSeries_TieStability(t *testing.T) {
	input := []domain.PriceObservation{
		obs("A", 200),
		obs("B", 200),
		obs("C", 150),
	}

	series, ok := BuildSeries(input)
	if !ok {
		t.Fatal("expected a series")
	}

	wantStores := []string{"C", "A", "B"}
	wantPrices := []domain.Money{150, 200, 200}
	if series.Len() != len(wantStores) {
		t.Fatalf("expected %d points, got %d", len(wantStores), series.Len())
	}
	for i, p := range series.Points {
		if p.Store != wantStores[i] || p.Price != wantPrices[i] {
			t.Errorf("point %d: expected %s %d, got %s %d", i, wantStores[i], wantPrices[i], p.Store, p.Price)
		}
		if p.Cheapest != (i == 0) {
			t.Errorf("point %d: unexpected cheapest flag %v", i, p.Cheapest)
		}
	}

	lowest, ok := SelectLowest(input)
	if !ok || lowest.Store != "C" || lowest.Price != 150 {
		t.Errorf("expected lowest C 150, got %+v", lowest)
	}
}

func TestBuildSeries_Empty(t *testing.T) {
	if _, ok := BuildSeries(nil); ok {
		t.Error("expected absent series for nil input")
	}
	if _, ok := BuildSeries([]domain.PriceObservation{obs("Broken", -1)}); ok {
		t.Error("expected absent series when every observation is invalid")
	}
}

func TestSeries_ZeroValue(t *testing.T) {
	var s Series

	if _, ok := s.Cheapest(); ok {
		t.Error("expected no cheapest point in empty series")
	}
	if s.Len() != 0 || s.Max() != 0 {
		t.Errorf("expected empty series, got len %d max %d", s.Len(), s.Max())
	}
}

func TestBuildSeries_SortedPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		input := randomObservations(rng)
		series, ok := BuildSeries(input)
		if len(input) == 0 {
			if ok {
				t.Fatal("expected absent for empty input")
			}
			continue
		}

		if series.Len() != len(input) {
			t.Fatalf("expected %d points, got %d", len(input), series.Len())
		}

		positions := make([]int, 0, series.Len())
		for j, p := range series.Points {
			if j > 0 && series.Points[j-1].Price > p.Price {
				t.Fatalf("series not sorted: %v", series.Points)
			}
			if input[p.Position].Store != p.Store || input[p.Position].Price != p.Price {
				t.Fatalf("point %+v does not match input at position %d", p, p.Position)
			}
			positions = append(positions, p.Position)
		}

		slices.Sort(positions)
		for j, pos := range positions {
			if pos != j {
				t.Fatalf("series is not a permutation of input: positions %v", positions)
			}
		}
	}
}

func TestBuildSeries_AgreesWithSelectLowest(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		input := randomObservations(rng)
		idx, okIdx := IndexOfLowest(input)
		series, okSeries := BuildSeries(input)
		if okIdx != okSeries {
			t.Fatalf("selector and series disagree on presence for %v", input)
		}
		if !okIdx {
			continue
		}
		cheapest, ok := series.Cheapest()
		if !ok {
			t.Fatalf("non-empty series has no cheapest point for %v", input)
		}
		if cheapest.Position != idx {
			t.Fatalf("cheapest point at position %d, selector picked %d for %v", cheapest.Position, idx, input)
		}
		if !cheapest.Cheapest {
			t.Fatal("first point must be flagged cheapest")
		}
	}
}

func TestBuildSeries_Idempotent(t *testing.T) {
	input := []domain.PriceObservation{
		obs("Waitrose", 325),
		obs("Tesco", 150),
		obs("Asda", 150),
		obs("M&S", 400),
	}
	snapshot := slices.Clone(input)

	first, _ := BuildSeries(input)
	second, _ := BuildSeries(input)

	if !slices.Equal(first.Points, second.Points) {
		t.Errorf("expected equal series, got %v and %v", first.Points, second.Points)
	}
	if !slices.Equal(input, snapshot) {
		t.Error("BuildSeries must not modify its input")
	}
}

func TestBuildView_SparseData(t *testing.T) {
	set := domain.NewSearchResultSet("milk",
		[]domain.Product{
			{ID: "P1", Name: "Whole Milk"},
			{ID: "P2", Name: "Oat Milk"},
			{ID: "P3", Name: "Goat Milk"},
		},
		map[string][]domain.PriceObservation{
			"P3": {obs("Tesco", 300), obs("Asda", 275)},
			"P1": {obs("Lidl", 95)},
		},
	)

	views := BuildView(set)
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}

	wantOrder := []string{"P1", "P2", "P3"}
	for i, v := range views {
		if v.Product.ID != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], v.Product.ID)
		}
	}

	if views[1].HasPrices() || views[1].Lowest != nil || views[1].Series != nil {
		t.Errorf("expected no price data for P2, got %+v", views[1])
	}

	if views[0].Lowest == nil || views[0].Lowest.Price != 95 {
		t.Errorf("expected P1 lowest 95, got %+v", views[0].Lowest)
	}
	if views[2].Lowest == nil || views[2].Lowest.Store != "Asda" {
		t.Errorf("expected P3 lowest Asda, got %+v", views[2].Lowest)
	}
	if views[2].Series == nil || views[2].Series.Len() != 2 {
		t.Errorf("expected P3 series with 2 points, got %+v", views[2].Series)
	}
}

func TestBuildView_ZeroPriceIsData(t *testing.T) {
	set := domain.NewSearchResultSet("free",
		[]domain.Product{{ID: "P1", Name: "Sample"}},
		map[string][]domain.PriceObservation{"P1": {obs("Co-op", 0)}},
	)

	views := BuildView(set)
	if !views[0].HasPrices() || views[0].Lowest.Price != 0 {
		t.Errorf("zero price must be reported as data, got %+v", views[0])
	}
}

func TestBuildView_SkipsDuplicateProducts(t *testing.T) {
	set := domain.NewSearchResultSet("bread",
		[]domain.Product{
			{ID: "P1", Name: "White Loaf"},
			{ID: "P1", Name: "White Loaf (again)"},
			{ID: "P2", Name: "Brown Loaf"},
		},
		nil,
	)

	views := BuildView(set)
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Product.Name != "White Loaf" {
		t.Errorf("expected first occurrence kept, got %q", views[0].Product.Name)
	}
}

func TestBuildView_Nil(t *testing.T) {
	if views := BuildView(nil); len(views) != 0 {
		t.Errorf("expected empty view, got %v", views)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.Money
		wantErr bool
	}{
		{name: "json number", raw: "1.5", want: 150},
		{name: "quoted", raw: `"2.25"`, want: 225},
		{name: "integer", raw: "3", want: 300},
		{name: "zero", raw: "0", want: 0},
		{name: "float noise", raw: "0.30000000000000004", want: 30},
		{name: "half rounds up", raw: "1.005", want: 101},
		{name: "exponent", raw: "1e1", want: 1000},
		{name: "negative", raw: "-0.99", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "null", raw: "null", wantErr: true},
		{name: "currency symbol", raw: `"£1.50"`, wantErr: true},
		{name: "text", raw: `"cheap"`, wantErr: true},
		{name: "too large", raw: "10000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestToDecimal(t *testing.T) {
	if got := ToDecimal(150).StringFixed(2); got != "1.50" {
		t.Errorf("expected 1.50, got %s", got)
	}
}
