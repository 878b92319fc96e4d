// Package handlers holds the two HTTP entry points, the diagnostic report and the plate
// passthrough, plus the middleware shared by the local server and the serverless functions.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"specparts-proxy/pkg/config"
	"specparts-proxy/pkg/logger"
	"specparts-proxy/pkg/models"
	"specparts-proxy/pkg/specparts"
	"time"

	"go.uber.org/zap"
)

// Upstream is the subset of the specparts client the handlers depend on.
type Upstream interface {
	Token(ctx context.Context, clientID, clientSecret string) (string, error)
	LoadAllProducts(ctx context.Context, token string) ([]models.Product, int, error)
	IdentifyVehicle(ctx context.Context, token, plate string) (*models.Vehicle, error)
	ResolvePlate(ctx context.Context, token, plate string) (json.RawMessage, error)
}

// Set is the pair of handlers, each wrapped with request-id and access logging.
type Set struct {
	Diagnostic http.Handler
	Plate      http.Handler
	Log        *zap.Logger
}

func NewSet(cfg config.Config, log *zap.Logger) *Set {
	client := specparts.NewClient(cfg.Specparts, log)
	preflight := logger.NewDeduper(log, 2*time.Second)

	return &Set{
		Diagnostic: WithRequestID(log, NewDiagnostic(cfg.Specparts, client, log, preflight)),
		Plate:      WithRequestID(log, NewPlate(cfg.Specparts, client, log, preflight)),
		Log:        log,
	}
}

// Load builds a Set from the environment. It is the cold-start path of the serverless
// functions.
func Load() (*Set, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Production(), cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewSet(cfg, log), nil
}
