package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Text is a string field that tolerates null, numbers and booleans in upstream JSON.
// Missing and null values decode to "", numbers and booleans to their JSON text.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '{' || b[0] == '[':
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Or returns fallback when t is empty.
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

// List decodes a JSON array and treats anything else as empty. Elements that do not fit T
// are kept as zero values so the length always matches the upstream array.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	items := make([]T, len(raw))
	for i, r := range raw {
		_ = json.Unmarshal(r, &items[i])
	}
	*l = items
	return nil
}

type Picture struct {
	ImageURL Text `json:"image_url"`
	URL      Text `json:"url"`
}

// Src prefers image_url and falls back to url.
func (p Picture) Src() string {
	return p.ImageURL.Or(string(p.URL))
}

type Vehicle struct {
	ID            Text `json:"id"`
	Brand         Text `json:"brand"`
	MasterModel   Text `json:"master_model"`
	Model         Text `json:"model"`
	Version       Text `json:"version"`
	SoldFromYear  Text `json:"sold_from_year"`
	SoldUntilYear Text `json:"sold_until_year"`

	// Raw keeps the fields as the upstream sent them. Only DecodeVehicle fills it.
	Raw map[string]json.RawMessage `json:"-"`
}

// DecodeVehicle decodes a vehicle object, returning a zero Vehicle for any other JSON shape.
func DecodeVehicle(raw json.RawMessage) Vehicle {
	var v Vehicle
	_ = json.Unmarshal(raw, &v)
	_ = json.Unmarshal(raw, &v.Raw)
	return v
}

// RawField returns key exactly as the upstream encoded it, or nil when it was absent.
func (v Vehicle) RawField(key string) json.RawMessage {
	return v.Raw[key]
}

type Product struct {
	Code        Text                  `json:"code"`
	Brand       Text                  `json:"brand"`
	Category    Text                  `json:"category"`
	Product     Text                  `json:"product"`
	Description Text                  `json:"description"`
	Vehicles    List[Vehicle]         `json:"vehicles"`
	Pictures    List[Picture]         `json:"pictures"`
	Links       List[json.RawMessage] `json:"links"`
}

func (p Product) HasVehicles() bool { return len(p.Vehicles) > 0 }
func (p Product) HasPictures() bool { return len(p.Pictures) > 0 }
func (p Product) HasLinks() bool    { return len(p.Links) > 0 }

// Page is one response of the paginated part listing.
type Page struct {
	Data List[Product]
	// HasData is false when the data field is absent or falsy, which ends pagination.
	HasData bool
	// HasPaging reports a truthy paging field; TotalPages is then paging.pages, or 1.
	HasPaging  bool
	TotalPages int
}

func (p *Page) UnmarshalJSON(b []byte) error {
	*p = Page{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil
	}

	var raw struct {
		Data   json.RawMessage `json:"data"`
		Paging json.RawMessage `json:"paging"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if Truthy(raw.Data) {
		p.HasData = true
		if err := p.decodeData(raw.Data); err != nil {
			return err
		}
	}

	if Truthy(raw.Paging) {
		p.HasPaging = true
		p.TotalPages = 1

		var paging struct {
			Pages json.RawMessage `json:"pages"`
		}
		if err := json.Unmarshal(raw.Paging, &paging); err == nil {
			if n := pageCount(paging.Pages); n != 0 {
				p.TotalPages = n
			}
		}
	}
	return nil
}

// decodeData appends a lone non-array value as a single record, the way concatenating it
// onto the accumulated list would.
func (p *Page) decodeData(raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if raw[0] == '[' {
		return json.Unmarshal(raw, &p.Data)
	}
	var one Product
	_ = json.Unmarshal(raw, &one)
	p.Data = List[Product]{one}
	return nil
}

// pageCount parses paging.pages, flooring fractions. Counts outside the int32 range are
// clamped to it.
func pageCount(raw json.RawMessage) int {
	var t Text
	if err := json.Unmarshal(raw, &t); err != nil || t == "" {
		return 0
	}
	f, err := strconv.ParseFloat(string(t), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Floor(f))))
}

// Truthy reports whether a raw JSON value is present and not null, false, 0 or "".
func Truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return f != 0
	}
	return true
}

type TokenRequest struct {
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type TokenResponse struct {
	AccessToken Text `json:"access_token"`
	TokenType   Text `json:"token_type"`
	ExpiresIn   Text `json:"expires_in"`
}
