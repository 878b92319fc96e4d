package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_MissingFieldsDecodeEmpty(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"code":"GRF001"}`), &p))

	assert.Equal(t, Text("GRF001"), p.Code)
	assert.Empty(t, p.Category)
	assert.Empty(t, p.Vehicles)
	assert.Empty(t, p.Pictures)
	assert.Empty(t, p.Links)
	assert.False(t, p.HasVehicles())
	assert.False(t, p.HasPictures())
	assert.False(t, p.HasLinks())
}

func TestProduct_TolerantFields(t *testing.T) {
	body := `{
		"code": 12345,
		"brand": null,
		"category": {"id": 3},
		"vehicles": "n/a",
		"pictures": [{"url": "http://img/1.jpg"}, {"image_url": "http://img/2.jpg", "url": "http://img/2b.jpg"}],
		"links": [1, "two", null]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "12345", p.Code.String())
	assert.Empty(t, p.Brand)
	assert.Empty(t, p.Category)
	assert.Empty(t, p.Vehicles)
	require.Len(t, p.Pictures, 2)
	assert.Equal(t, "http://img/1.jpg", p.Pictures[0].Src())
	assert.Equal(t, "http://img/2.jpg", p.Pictures[1].Src())
	assert.Len(t, p.Links, 3)
}

func TestList_KeepsLengthForMisshapenElements(t *testing.T) {
	var vehicles List[Vehicle]
	require.NoError(t, json.Unmarshal([]byte(`[{"brand":"FIAT"}, "broken", null]`), &vehicles))

	require.Len(t, vehicles, 3)
	assert.Equal(t, Text("FIAT"), vehicles[0].Brand)
	assert.Equal(t, Vehicle{}, vehicles[1])
}

func TestVehicle_YearsAsNumbers(t *testing.T) {
	v := DecodeVehicle(json.RawMessage(`{"brand":"FORD","sold_from_year":2010,"sold_until_year":"2015","id":77}`))

	assert.Equal(t, "2010", v.SoldFromYear.String())
	assert.Equal(t, "2015", v.SoldUntilYear.String())
	assert.Equal(t, "77", v.ID.String())

	assert.JSONEq(t, `2010`, string(v.RawField("sold_from_year")))
	assert.JSONEq(t, `"2015"`, string(v.RawField("sold_until_year")))
	assert.JSONEq(t, `77`, string(v.RawField("id")))
	assert.Nil(t, v.RawField("version"))
}

func TestPage_LoneObjectKeepsFields(t *testing.T) {
	var p Page
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"code":"X","category":"Frenos"}}`), &p))

	require.Len(t, p.Data, 1)
	assert.Equal(t, Text("X"), p.Data[0].Code)
	assert.Equal(t, Text("Frenos"), p.Data[0].Category)
}

func TestPage_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		hasData    bool
		items      int
		hasPaging  bool
		totalPages int
	}{
		{"data and paging", `{"data":[{"code":"A"},{"code":"B"}],"paging":{"pages":3}}`, true, 2, true, 3},
		{"empty data array continues", `{"data":[],"paging":{"pages":2}}`, true, 0, true, 2},
		{"missing data", `{"paging":{"pages":4}}`, false, 0, true, 4},
		{"null data", `{"data":null}`, false, 0, false, 0},
		{"paging without pages", `{"data":[{}],"paging":{}}`, true, 1, true, 1},
		{"zero pages falls back to one", `{"data":[{}],"paging":{"pages":0}}`, true, 1, true, 1},
		{"pages as string", `{"data":[{}],"paging":{"pages":"5"}}`, true, 1, true, 5},
		{"no paging", `{"data":[{}]}`, true, 1, false, 0},
		{"huge page count is clamped", `{"data":[],"paging":{"pages":1e300}}`, true, 0, true, math.MaxInt32},
		{"negative page count is clamped", `{"data":[],"paging":{"pages":-1e300}}`, true, 0, true, math.MinInt32},
		{"fractional page count is floored", `{"data":[],"paging":{"pages":2.7}}`, true, 0, true, 2},
		{"lone object is one record", `{"data":{"code":"X"},"paging":{"pages":1}}`, true, 1, true, 1},
		{"lone scalar is one record", `{"data":"oops"}`, true, 1, false, 0},
		{"top-level null", `null`, false, 0, false, 0},
		{"top-level array", `[1,2,3]`, false, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Page
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.hasData, p.HasData)
			assert.Len(t, p.Data, tt.items)
			assert.Equal(t, tt.hasPaging, p.HasPaging)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestTruthy(t *testing.T) {
	for _, raw := range []string{"", "null", "false", "0", `""`, " 0.0 "} {
		assert.False(t, Truthy(json.RawMessage(raw)), raw)
	}
	for _, raw := range []string{"[]", "{}", "1", `"0"`, "true"} {
		assert.True(t, Truthy(json.RawMessage(raw)), raw)
	}
}
