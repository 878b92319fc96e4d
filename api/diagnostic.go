package handler

import (
	"net/http"
	"specparts-proxy/pkg/api"
	"specparts-proxy/pkg/handlers"
	"sync"
)

var (
	diagnosticOnce    sync.Once
	diagnosticHandler http.Handler
	diagnosticErr     error
)

// Diagnostic is the serverless entry point for the diagnostic report. The handler set is
// built once per cold start.
func Diagnostic(w http.ResponseWriter, r *http.Request) {
	diagnosticOnce.Do(func() {
		set, err := handlers.Load()
		if err != nil {
			diagnosticErr = err
			return
		}
		diagnosticHandler = set.Diagnostic
	})

	if diagnosticErr != nil {
		api.WriteInternalServerError(w, diagnosticErr)
		return
	}
	diagnosticHandler.ServeHTTP(w, r)
}
