package specparts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlate_ReturnsRawDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicle/identification", r.URL.Path)
		assert.Equal(t, "plate=AB%20123%2FCD", r.URL.RawQuery)
		w.Write([]byte(`{"brand":"FIAT","extra":{"nested":[1,2]}}`))
	}))
	defer ts.Close()

	raw, err := newTestClient("", ts.URL).ResolvePlate(context.Background(), "tok", "AB 123/CD")
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"FIAT","extra":{"nested":[1,2]}}`, string(raw))
}

func TestResolvePlate_EmptyPlate(t *testing.T) {
	_, err := newTestClient("", "http://127.0.0.1:1").ResolvePlate(context.Background(), "tok", "")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "plate", valErr.Field)
	assert.Equal(t, "Falta patente", err.Error())
}

func TestIdentifyVehicle(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
		brand   string
		year    string
	}{
		{"vehicle", `{"brand":"FORD","master_model":"FIESTA","sold_from_year":2012,"id":9}`, false, "FORD", "2012"},
		{"null document", `null`, true, "", ""},
		{"array document", `[]`, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			v, err := newTestClient("", ts.URL).IdentifyVehicle(context.Background(), "tok", "AC923HI")
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.brand, v.Brand.String())
			assert.Equal(t, tt.year, v.SoldFromYear.String())
		})
	}
}
