package specparts

import (
	"context"
	"encoding/json"
	"net/url"
	"specparts-proxy/pkg/models"
	"strings"
)

// ResolvePlate returns the raw vehicle-identification document for plate.
func (c *Client) ResolvePlate(ctx context.Context, token, plate string) (json.RawMessage, error) {
	if plate == "" {
		return nil, &ValidationError{Field: "plate", Msg: msgMissingPlate}
	}
	return c.Get(ctx, "/vehicle/identification?plate="+encodeURIComponent(plate), token)
}

// IdentifyVehicle resolves plate and decodes the result. A nil vehicle means the upstream
// answered with an empty document.
func (c *Client) IdentifyVehicle(ctx context.Context, token, plate string) (*models.Vehicle, error) {
	raw, err := c.ResolvePlate(ctx, token, plate)
	if err != nil {
		return nil, err
	}
	if !models.Truthy(raw) {
		return nil, nil
	}
	v := models.DecodeVehicle(raw)
	return &v, nil
}

// encodeURIComponent escapes spaces as %20 rather than +.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
