package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/soko/internal/model"
)

var nairobi = model.Coordinate{Lat: -1.2921, Lng: 36.8219}

func testServices() []model.Service {
	return []model.Service{
		{
			ID:         1,
			Title:      "Arduino Repair",
			HourlyRate: model.NewAmount(500),
			Category:   model.NewCategoryRef(model.Category{ID: 3, Name: "Repairs"}),
			Location:   &model.Coordinate{Lat: -1.2921, Lng: 36.8219},
		},
		{
			ID:         2,
			Title:      "Solar Installation",
			FixedPrice: model.NewAmount(8000),
		},
	}
}

func TestWriteListings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteListings(&buf, testServices(), &nairobi))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "DISTANCE")
	assert.Contains(t, lines[1], "Arduino Repair")
	assert.Contains(t, lines[1], "Repairs")
	assert.Contains(t, lines[1], "KES 500/hr")
	assert.Contains(t, lines[1], "0 m away")
	assert.Contains(t, lines[2], "KES 8,000 fixed")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "-"), "missing position renders as -")
}

func TestWriteListings_WithoutCenter(t *testing.T) {
	var buf bytes.Buffer
	businesses := []model.Business{{ID: 7, Name: "Luthuli Electronics"}}
	require.NoError(t, WriteListings(&buf, businesses, nil))

	out := buf.String()
	assert.NotContains(t, out, "DISTANCE")
	assert.Contains(t, out, "Luthuli Electronics")
}

func TestWriteListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteListings(&buf, []model.Product{}, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "header only")
}

func TestRenderListing(t *testing.T) {
	svc := testServices()[0]
	svc.Description = "Board-level repair for microcontrollers"
	svc.Provider = &model.User{Username: "wanjiku"}

	out := RenderListing(svc, &nairobi)
	assert.Contains(t, out, "Arduino Repair")
	assert.Contains(t, out, "Board-level repair")
	assert.Contains(t, out, "KES 500/hr")
	assert.Contains(t, out, "wanjiku")
	assert.Contains(t, out, "-1.2921, 36.8219")
}

func TestRenderListing_Product(t *testing.T) {
	p := model.Product{Name: "ESP32", Condition: model.ConditionUsed, Stock: 4, AITags: []string{"wifi", "iot"}}
	out := RenderListing(p, nil)
	assert.Contains(t, out, "Used, 4 in stock")
	assert.Contains(t, out, "wifi, iot")
	assert.Contains(t, out, "Price on request")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("Saved"), "Saved")
	assert.Contains(t, FormatError("Failed"), ErrorIcon)
	assert.Contains(t, FormatTitle("Services"), StoreIcon)
}
