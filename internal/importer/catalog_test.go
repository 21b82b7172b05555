package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

const sampleCSV = `Vendor Name,Phone,Ingredient,Qty,Unit,Price per Unit,Quality,Notes
ABC Traders,98450,Almonds,500,kg,600,5,California
ABC Traders,,Cashews,200,kgs,800,4,
,,,,,,,
Nut House,,Almonds,"1,000",kg,620,4.0,
abc traders,,Raisins,50,kg,300,,
`

func TestParseCSVGroupsByVendor(t *testing.T) {
	vendors, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, vendors, 2)

	abc := vendors[0]
	assert.Equal(t, "ABC Traders", abc.Name)
	assert.Equal(t, "98450", abc.Phone)
	require.Len(t, abc.Ingredients, 3)
	assert.Equal(t, domain.Ingredient{Name: "Almonds", QuantityAvailable: 500, Unit: domain.UnitKg, PricePerUnit: 600, Quality: 5, Notes: "California"}, abc.Ingredients[0])
	assert.Equal(t, domain.UnitKg, abc.Ingredients[1].Unit)
	assert.Equal(t, defaultQuality, abc.Ingredients[2].Quality)

	assert.Equal(t, "Nut House", vendors[1].Name)
	assert.Equal(t, 1000.0, vendors[1].Ingredients[0].QuantityAvailable)
	assert.Equal(t, 4, vendors[1].Ingredients[0].Quality)

	for _, v := range vendors {
		assert.NoError(t, v.Validate())
	}
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Vendor,Ingredient\nABC,Almonds\n"))
	assert.ErrorContains(t, err, "missing required column: price")

	_, err = ParseCSV(strings.NewReader("Vendor,Ingredient,Price\nABC,Almonds,abc\n"))
	assert.ErrorContains(t, err, "row 2")

	_, err = ParseCSV(strings.NewReader("Vendor,Ingredient,Price,Unit\nABC,Almonds,10,litre\n"))
	assert.ErrorContains(t, err, "unsupported unit")

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Supplier", "Item", "Stock", "Unit", "Rate", "Rating"},
		{"Dry Fruit Co", "Dates", 40, "kg", 250, 3},
		{"Dry Fruit Co", "Pumpkin Seeds", 2500, "g", 0.9, 4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	vendors, err := Parse("catalog.XLSX", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	require.Len(t, vendors[0].Ingredients, 2)
	assert.Equal(t, domain.UnitGrams, vendors[0].Ingredients[1].Unit)
	assert.Equal(t, 0.9, vendors[0].Ingredients[1].PricePerUnit)
}

func TestParseRejectsUnknownFormat(t *testing.T) {
	_, err := Parse("catalog.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, IsCatalogFile("notes.txt"))
	assert.True(t, IsCatalogFile("April.csv"))
}

func TestMergeKeepsExistingIngredients(t *testing.T) {
	existing := domain.Vendor{ID: "v1", Name: "ABC Traders", Ingredients: []domain.Ingredient{
		{ID: "i1", Name: "Almonds", QuantityAvailable: 10, Unit: domain.UnitKg, PricePerUnit: 600, Quality: 5},
		{ID: "i2", Name: "Walnuts", QuantityAvailable: 5, Unit: domain.UnitKg, PricePerUnit: 900, Quality: 4},
	}}
	incoming := domain.Vendor{Name: "abc traders", Location: "Bengaluru", Ingredients: []domain.Ingredient{
		{Name: "almonds", QuantityAvailable: 50, Unit: domain.UnitKg, PricePerUnit: 580, Quality: 5},
		{Name: "Dates", QuantityAvailable: 20, Unit: domain.UnitKg, PricePerUnit: 250, Quality: 3},
	}}

	merged := Merge(existing, incoming)
	assert.Equal(t, "v1", merged.ID)
	assert.Equal(t, "ABC Traders", merged.Name)
	assert.Equal(t, "Bengaluru", merged.Location)
	require.Len(t, merged.Ingredients, 3)
	assert.Equal(t, "i1", merged.Ingredients[0].ID)
	assert.Equal(t, 580.0, merged.Ingredients[0].PricePerUnit)
	assert.Equal(t, "Walnuts", merged.Ingredients[1].Name)
	assert.Equal(t, "Dates", merged.Ingredients[2].Name)
	assert.Equal(t, 600.0, existing.Ingredients[0].PricePerUnit, "input is not mutated")
}
