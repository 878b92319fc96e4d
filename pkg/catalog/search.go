package catalog

import (
	"fmt"
	"specparts-proxy/pkg/models"
	"strings"
)

const vehicleSampleSize = 3

type Match struct {
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	Product        string   `json:"product"`
	Category       string   `json:"category"`
	VehiclesCount  int      `json:"vehicles_count"`
	Pictures       []string `json:"pictures"`
	VehiclesSample []string `json:"vehicles_sample"`
}

type CodeSearch struct {
	Searched string  `json:"searched"`
	Found    int     `json:"found"`
	Matches  []Match `json:"matches"`
}

// SearchCode returns the records whose code contains code, ignoring case, in list order.
// Records without a code never match.
func SearchCode(products []models.Product, code string) CodeSearch {
	needle := strings.ToLower(code)
	res := CodeSearch{Searched: code, Matches: []Match{}}

	for _, p := range products {
		if p.Code == "" || !strings.Contains(strings.ToLower(p.Code.String()), needle) {
			continue
		}
		res.Matches = append(res.Matches, toMatch(p))
	}
	res.Found = len(res.Matches)
	return res
}

func toMatch(p models.Product) Match {
	m := Match{
		Code:           p.Code.String(),
		Description:    p.Description.String(),
		Product:        p.Product.String(),
		Category:       p.Category.String(),
		VehiclesCount:  len(p.Vehicles),
		Pictures:       make([]string, 0, len(p.Pictures)),
		VehiclesSample: make([]string, 0, vehicleSampleSize),
	}

	for _, pic := range p.Pictures {
		m.Pictures = append(m.Pictures, pic.Src())
	}
	for i, v := range p.Vehicles {
		if i == vehicleSampleSize {
			break
		}
		m.VehiclesSample = append(m.VehiclesSample, VehicleLabel(v))
	}
	return m
}

// VehicleLabel formats a vehicle as "<brand> <master_model> <model> (<from>-<until>)".
func VehicleLabel(v models.Vehicle) string {
	return fmt.Sprintf("%s %s %s (%s-%s)", v.Brand, v.MasterModel, v.Model, v.SoldFromYear, v.SoldUntilYear)
}
