package filter

import (
	"testing"

	"github.com/Veraticus/soko/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func category(id int, name string) model.CategoryRef {
	return model.NewCategoryRef(model.Category{ID: id, Name: name})
}

func sampleServices() []model.Service {
	return []model.Service{
		{ID: 1, Title: "Arduino Repair", Description: "fix boards", Category: category(1, "Repairs"), HourlyRate: model.NewAmount(500)},
		{ID: 2, Title: "Solar install", Description: "panels", Category: category(2, "Solar"), FixedPrice: model.NewAmount(8000)},
		{ID: 3, Title: "PCB design", Description: "KiCad layouts for ARDUINO shields", Category: category(3, "Design"), HourlyRate: model.NewAmount(1500)},
		{ID: 4, Title: "Phone screen swap", Description: "same day", HourlyRate: model.NewAmount(499)},
		{ID: 5, Title: "Consultation", Description: "ask anything", Category: category(1, "repairs")},
	}
}

func ids[T model.Listing](items []T) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ListingID())
	}
	return out
}

func TestApply_IdentityWhenInactive(t *testing.T) {
	raw := sampleServices()

	got := Apply(raw, Criteria{})
	assert.Equal(t, raw, got)

	got = Apply(raw, Criteria{Center: model.Coordinate{Lat: 1, Lng: 2}, RadiusKm: 20})
	assert.Equal(t, raw, got, "centre and radius are not client-side stages")
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	raw := sampleServices()
	before := ids(raw)

	_ = Apply(raw, Criteria{SearchTerm: "solar"})
	assert.Equal(t, before, ids(raw))
}

func TestApply_EmptyCollection(t *testing.T) {
	criteria := Criteria{SearchTerm: "x", CategoryName: "Repairs"}.WithPriceToken("0-100")

	got := Apply([]model.Service{}, criteria)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Apply[model.Service](nil, Criteria{})
	assert.Empty(t, got)
}

func TestApply_TextStage(t *testing.T) {
	raw := []model.Service{
		{ID: 1, Title: "Arduino Repair", Description: "fix boards"},
		{ID: 2, Title: "Solar install", Description: "panels"},
	}

	got := Apply(raw, Criteria{SearchTerm: "arduino"})
	require.Len(t, got, 1)
	assert.Equal(t, raw[0], got[0])
}

func TestApply_TextStageMatchesDescription(t *testing.T) {
	got := Apply(sampleServices(), Criteria{SearchTerm: "Arduino"})
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestApply_TextStageIdempotent(t *testing.T) {
	criteria := Criteria{SearchTerm: "re"}
	once := Apply(sampleServices(), criteria)
	twice := Apply(once, criteria)
	assert.Equal(t, once, twice)
}

func TestApply_CategoryStage(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []int
	}{
		{name: "unset keeps uncategorised items", category: "", want: []int{1, 2, 3, 4, 5}},
		{name: "case-insensitive exact match", category: "REPAIRS", want: []int{1, 5}},
		{name: "no partial match", category: "Repair", want: []int{}},
		{name: "uncategorised never matches", category: "Solar", want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleServices(), Criteria{CategoryName: tt.category})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_CategoryStageIgnoresUnresolvedRefs(t *testing.T) {
	raw := []model.Service{{ID: 1, Title: "x", Category: model.CategoryID(1)}}
	assert.Empty(t, Apply(raw, Criteria{CategoryName: "Repairs"}))
}

func TestApply_PriceStageInclusiveBounds(t *testing.T) {
	criteria := Criteria{}.WithPriceToken("500-2000")

	got := Apply(sampleServices(), criteria)
	assert.Equal(t, []int{1, 3}, ids(got), "500 is included, 499 and unpriced items are not")
}

func TestApply_PriceStageUsesFixedPriceFallback(t *testing.T) {
	criteria := Criteria{}.WithPriceToken("5000-10000")
	got := Apply(sampleServices(), criteria)
	assert.Equal(t, []int{2}, ids(got))
}

func TestApply_PriceStageProducts(t *testing.T) {
	raw := []model.Product{
		{ID: 1, Name: "ESP32", Price: model.NewAmount(950)},
		{ID: 2, Name: "Raspberry Pi 5", Price: model.NewAmount(12500)},
		{ID: 3, Name: "Mystery box"},
	}
	got := Apply(raw, Criteria{}.WithPriceToken("10000-999999"))
	assert.Equal(t, []int{2}, ids(got))
}

func TestApply_PriceStageExcludesBusinesses(t *testing.T) {
	raw := []model.Business{{ID: 1, Name: "Luthuli Avenue Electronics"}}
	assert.Empty(t, Apply(raw, Criteria{}.WithPriceToken("0-500")))
	assert.Len(t, Apply(raw, Criteria{}), 1)
}

func TestApply_MalformedPriceTokenIsInactive(t *testing.T) {
	for _, token := range []string{"", "cheap", "500", "500-", "-2000", "abc-2000", "500-xyz", "NaN-2000", "0-NaN", "inf-inf", "0-Infinity"} {
		t.Run(token, func(t *testing.T) {
			criteria := Criteria{}.WithPriceToken(token)
			assert.Nil(t, criteria.PriceRange)
			assert.Equal(t, ids(sampleServices()), ids(Apply(sampleServices(), criteria)))
		})
	}
}

func TestStages_Commute(t *testing.T) {
	criteria := Criteria{CategoryName: "repairs"}.WithPriceToken("0-600")
	stages := Stages[model.Service](criteria)
	require.Len(t, stages, 2)

	forward := Run(sampleServices(), stages[0], stages[1])
	backward := Run(sampleServices(), stages[1], stages[0])
	assert.Equal(t, forward, backward)
	assert.Equal(t, []int{1}, ids(forward))
}

func TestStages_SkipsUnsetCriteria(t *testing.T) {
	assert.Empty(t, Stages[model.Service](Criteria{}))

	stages := Stages[model.Service](Criteria{SearchTerm: "a", CategoryName: "b"}.WithPriceToken("1-2"))
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"text", "category", "price"}, names)
}

func TestCriteria_ResetRestoresRaw(t *testing.T) {
	raw := sampleServices()
	criteria := Criteria{
		SearchTerm:   "arduino",
		CategoryName: "Repairs",
		Center:       model.Coordinate{Lat: -1.2921, Lng: 36.8219},
		RadiusKm:     20,
	}.WithPriceToken("500-2000")
	require.True(t, criteria.Active())
	require.NotEqual(t, raw, Apply(raw, criteria))

	reset := criteria.Reset()
	assert.False(t, reset.Active())
	assert.Empty(t, reset.PriceToken)
	assert.Equal(t, criteria.Center, reset.Center)
	assert.InDelta(t, 20.0, reset.RadiusKm, 0.001)
	assert.Equal(t, raw, Apply(raw, reset))
}

func TestParsePriceRange(t *testing.T) {
	r := ParsePriceRange(" 2000 - 5000 ")
	require.NotNil(t, r)
	assert.InDelta(t, 2000.0, r.Min, 0.001)
	assert.InDelta(t, 5000.0, r.Max, 0.001)
	assert.Equal(t, "2000-5000", r.Token())
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "Any Price", PriceLabel(""))
	assert.Equal(t, "Over 10,000", PriceLabel("10000-999999"))
	assert.Equal(t, "1-2", PriceLabel("1-2"))
}
