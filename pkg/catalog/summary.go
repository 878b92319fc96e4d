// Package catalog computes the diagnostic views over a loaded product list: tallies,
// presence counts, a short sample and the code search.
package catalog

import "specparts-proxy/pkg/models"

const (
	NoCategory = "Sin categoría"
	NoProduct  = "Sin producto"

	sampleSize = 5
)

type Sample struct {
	Code          string `json:"code"`
	Brand         string `json:"brand"`
	Category      string `json:"category"`
	Product       string `json:"product"`
	Description   string `json:"description"`
	VehiclesCount int    `json:"vehicles_count"`
	PicturesCount int    `json:"pictures_count"`
	HasLinks      bool   `json:"has_links"`
}

type Summary struct {
	Status          string         `json:"status"`
	Total           int            `json:"total"`
	PagesLoaded     int            `json:"pages_loaded"`
	WithVehicles    int            `json:"with_vehicles"`
	WithoutVehicles int            `json:"without_vehicles"`
	WithPictures    int            `json:"with_pictures"`
	WithLinks       int            `json:"with_links"`
	Categories      map[string]int `json:"categories"`
	ProductTypes    map[string]int `json:"product_types"`
	SampleProducts  []Sample       `json:"sample_products"`
}

// Summarize scans products once. Every record lands in exactly one category bucket, one
// product-type bucket and one of with/without vehicles, so each of those sums to Total.
func Summarize(products []models.Product, pagesLoaded int) Summary {
	s := Summary{
		Status:         "OK",
		Total:          len(products),
		PagesLoaded:    pagesLoaded,
		Categories:     make(map[string]int),
		ProductTypes:   make(map[string]int),
		SampleProducts: make([]Sample, 0, sampleSize),
	}

	for _, p := range products {
		s.Categories[p.Category.Or(NoCategory)]++
		s.ProductTypes[p.Product.Or(NoProduct)]++

		if p.HasVehicles() {
			s.WithVehicles++
		} else {
			s.WithoutVehicles++
		}
		if p.HasPictures() {
			s.WithPictures++
		}
		if p.HasLinks() {
			s.WithLinks++
		}

		if len(s.SampleProducts) < sampleSize {
			s.SampleProducts = append(s.SampleProducts, toSample(p))
		}
	}
	return s
}

func toSample(p models.Product) Sample {
	return Sample{
		Code:          p.Code.String(),
		Brand:         p.Brand.String(),
		Category:      p.Category.String(),
		Product:       p.Product.String(),
		Description:   p.Description.String(),
		VehiclesCount: len(p.Vehicles),
		PicturesCount: len(p.Pictures),
		HasLinks:      p.HasLinks(),
	}
}
