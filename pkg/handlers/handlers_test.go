package handlers

import (
	"context"
	"encoding/json"
	"specparts-proxy/pkg/config"
	"specparts-proxy/pkg/models"
)

// ---- fake upstream implementing Upstream ----

type fakeUpstream struct {
	token    string
	tokenErr error

	products []models.Product
	pages    int
	loadErr  error

	vehicle    *models.Vehicle
	vehicleErr error

	raw    json.RawMessage
	rawErr error

	gotClientID     string
	gotClientSecret string
	gotToken        string
	gotPlate        string
	loadCalls       int
}

func (f *fakeUpstream) Token(ctx context.Context, clientID, clientSecret string) (string, error) {
	f.gotClientID, f.gotClientSecret = clientID, clientSecret
	return f.token, f.tokenErr
}

func (f *fakeUpstream) LoadAllProducts(ctx context.Context, token string) ([]models.Product, int, error) {
	f.loadCalls++
	f.gotToken = token
	return f.products, f.pages, f.loadErr
}

func (f *fakeUpstream) IdentifyVehicle(ctx context.Context, token, plate string) (*models.Vehicle, error) {
	f.gotPlate = plate
	return f.vehicle, f.vehicleErr
}

func (f *fakeUpstream) ResolvePlate(ctx context.Context, token, plate string) (json.RawMessage, error) {
	f.gotToken, f.gotPlate = token, plate
	return f.raw, f.rawErr
}

func testSpecparts() config.Specparts {
	return config.Specparts{
		ClientID:     "abcdefghij12345",
		ClientSecret: "s3cr3t-value-xyz",
		Brand:        "GRIFFO",
		PageLimit:    100,
		TestPlate:    "AC923HI",
	}
}
