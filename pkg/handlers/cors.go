package handlers

import (
	"net/http"
	"specparts-proxy/pkg/logger"
)

type corsPolicy struct {
	methods string
	headers string
}

// apply sets the CORS headers and answers preflight requests. It reports whether the
// request was fully handled.
func (p corsPolicy) apply(w http.ResponseWriter, r *http.Request, preflight *logger.Deduper) bool {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	if p.methods != "" {
		h.Set("Access-Control-Allow-Methods", p.methods)
	}
	if p.headers != "" {
		h.Set("Access-Control-Allow-Headers", p.headers)
	}

	if r.Method != http.MethodOptions {
		return false
	}
	if preflight != nil {
		preflight.Printf("CORS preflight %s", r.URL.Path)
	}
	w.WriteHeader(http.StatusOK)
	return true
}
