package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"specparts-proxy/pkg/api"
	"specparts-proxy/pkg/catalog"
	"specparts-proxy/pkg/config"
	"specparts-proxy/pkg/logger"
	"specparts-proxy/pkg/specparts"
	"time"

	"go.uber.org/zap"
)

const (
	missing         = "MISSING"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Credentials struct {
	ClientIDFirst5 string `json:"client_id_first_5"`
	ClientIDLast5  string `json:"client_id_last_5"`
	SecretFirst5   string `json:"secret_first_5"`
	SecretLast5    string `json:"secret_last_5"`
}

type AuthResult struct {
	Status       string `json:"status"`
	TokenFirst10 string `json:"token_first_10,omitempty"`
	HTTPCode     int    `json:"httpCode,omitempty"`
}

// PlateSummary relays year and id with their upstream JSON type; absent ones are omitted.
type PlateSummary struct {
	Brand   string          `json:"brand"`
	Model   string          `json:"model"`
	Version string          `json:"version"`
	Year    json.RawMessage `json:"year,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type PlateSearch struct {
	Status  string `json:"status"`
	Plate   string `json:"plate,omitempty"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

type Tests struct {
	Credentials *Credentials        `json:"credentials,omitempty"`
	Auth        *AuthResult         `json:"auth,omitempty"`
	Products    *catalog.Summary    `json:"products,omitempty"`
	CodeSearch  *catalog.CodeSearch `json:"code_search,omitempty"`
	PlateSearch *PlateSearch        `json:"plate_search,omitempty"`
}

type Report struct {
	Timestamp string `json:"timestamp"`
	Tests     Tests  `json:"tests"`
	Error     string `json:"error,omitempty"`
}

// Diagnostic exercises the whole upstream pipeline and reports each step. It always
// answers 200: failures are recorded in the report body.
type Diagnostic struct {
	cfg       config.Specparts
	upstream  Upstream
	log       *zap.Logger
	preflight *logger.Deduper
	cors      corsPolicy
	now       func() time.Time
}

func NewDiagnostic(cfg config.Specparts, upstream Upstream, log *zap.Logger, preflight *logger.Deduper) *Diagnostic {
	return &Diagnostic{
		cfg:       cfg,
		upstream:  upstream,
		log:       log,
		preflight: preflight,
		cors:      corsPolicy{methods: "GET, OPTIONS", headers: "Content-Type"},
		now:       time.Now,
	}
}

func (d *Diagnostic) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.cors.apply(w, r, d.preflight) {
		return
	}

	report := d.run(r)
	if err := api.WriteJSON(w, http.StatusOK, report); err != nil {
		requestLogger(r.Context(), d.log).Error("Error encoding diagnostic report", zap.Error(err))
	}
}

func (d *Diagnostic) run(r *http.Request) *Report {
	ctx := r.Context()
	log := requestLogger(ctx, d.log)

	report := &Report{Timestamp: d.now().UTC().Format(timestampLayout)}
	report.Tests.Credentials = &Credentials{
		ClientIDFirst5: head(d.cfg.ClientID, 5),
		ClientIDLast5:  tail(d.cfg.ClientID, 5),
		SecretFirst5:   head(d.cfg.ClientSecret, 5),
		SecretLast5:    tail(d.cfg.ClientSecret, 5),
	}

	token, err := d.upstream.Token(ctx, d.cfg.ClientID, d.cfg.ClientSecret)
	if err != nil {
		var authErr *specparts.AuthError
		if errors.As(err, &authErr) {
			log.Warn("Token request rejected", zap.Int("status", authErr.StatusCode))
			report.Tests.Auth = &AuthResult{Status: "FAILED", HTTPCode: authErr.StatusCode}
			return report
		}
		log.Error("Token request failed", zap.Error(err))
		report.Error = err.Error()
		return report
	}
	report.Tests.Auth = &AuthResult{Status: "OK", TokenFirst10: prefix(token, 10) + "..."}

	products, pages, err := d.upstream.LoadAllProducts(ctx, token)
	if err != nil {
		log.Error("Loading catalog failed", zap.Error(err))
		report.Error = err.Error()
		return report
	}
	summary := catalog.Summarize(products, pages)
	report.Tests.Products = &summary

	if code := r.URL.Query().Get("code"); code != "" {
		search := catalog.SearchCode(products, code)
		log.Info("Code search", zap.String("code", code), zap.Int("found", search.Found))
		report.Tests.CodeSearch = &search
	}

	report.Tests.PlateSearch = d.probePlate(r, token)
	return report
}

// probePlate resolves the configured test plate. Its failure is reported in place and
// never affects the rest of the report.
func (d *Diagnostic) probePlate(r *http.Request, token string) *PlateSearch {
	plate := d.cfg.TestPlate

	v, err := d.upstream.IdentifyVehicle(r.Context(), token, plate)
	if err != nil {
		requestLogger(r.Context(), d.log).Warn("Plate probe failed", zap.String("plate", plate), zap.Error(err))
		return &PlateSearch{Status: "ERROR", Message: err.Error()}
	}

	res := &PlateSearch{Status: "OK", Plate: plate, Result: "No data"}
	if v != nil {
		res.Result = PlateSummary{
			Brand:   v.Brand.String(),
			Model:   v.MasterModel.Or(v.Model.String()),
			Version: v.Version.String(),
			Year:    v.RawField("sold_from_year"),
			ID:      v.RawField("id"),
		}
	}
	return res
}

// head returns the first n runes of s followed by "...", or MISSING for an empty s.
func head(s string, n int) string {
	if s == "" {
		return missing
	}
	return prefix(s, n) + "..."
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// tail returns "..." followed by the last n runes of s, or MISSING for an empty s.
func tail(s string, n int) string {
	if s == "" {
		return missing
	}
	r := []rune(s)
	if len(r) > n {
		r = r[len(r)-n:]
	}
	return "..." + string(r)
}
