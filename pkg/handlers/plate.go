package handlers

import (
	"errors"
	"net/http"
	"specparts-proxy/pkg/api"
	"specparts-proxy/pkg/config"
	"specparts-proxy/pkg/logger"
	"specparts-proxy/pkg/specparts"

	"go.uber.org/zap"
)

const (
	msgMissingPlate = "Falta patente"
	msgAuthFailed   = "Auth failed"
)

// Plate resolves ?plate= against the vehicle-identification endpoint and relays the
// upstream document unchanged.
type Plate struct {
	cfg       config.Specparts
	upstream  Upstream
	log       *zap.Logger
	preflight *logger.Deduper
	cors      corsPolicy
}

func NewPlate(cfg config.Specparts, upstream Upstream, log *zap.Logger, preflight *logger.Deduper) *Plate {
	return &Plate{
		cfg:       cfg,
		upstream:  upstream,
		log:       log,
		preflight: preflight,
		cors:      corsPolicy{},
	}
}

func (p *Plate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if p.cors.apply(w, r, p.preflight) {
		return
	}

	ctx := r.Context()
	log := requestLogger(ctx, p.log)

	plate := r.URL.Query().Get("plate")
	if plate == "" {
		api.WriteBadRequest(w, msgMissingPlate)
		return
	}

	token, err := p.upstream.Token(ctx, p.cfg.ClientID, p.cfg.ClientSecret)
	if err != nil {
		var authErr *specparts.AuthError
		if errors.As(err, &authErr) {
			log.Warn("Token request rejected", zap.Int("status", authErr.StatusCode))
			api.WriteUnauthorized(w, msgAuthFailed)
			return
		}
		log.Error("Token request failed", zap.Error(err))
		api.WriteInternalServerError(w, err)
		return
	}

	data, err := p.upstream.ResolvePlate(ctx, token, plate)
	if err != nil {
		var valErr *specparts.ValidationError
		if errors.As(err, &valErr) {
			api.WriteBadRequest(w, valErr.Msg)
			return
		}
		log.Error("Plate lookup failed", zap.String("plate", plate), zap.Error(err))
		api.WriteInternalServerError(w, err)
		return
	}

	if err := api.WriteRaw(w, http.StatusOK, data); err != nil {
		log.Error("Error writing plate response", zap.Error(err))
	}
}
