package handler

import (
	"net/http"
	"specparts-proxy/pkg/api"
	"specparts-proxy/pkg/handlers"
	"sync"
)

var (
	plateOnce    sync.Once
	plateHandler http.Handler
	plateErr     error
)

// Plate is the serverless entry point for the plate lookup. The handler set is
// built once per cold start.
func Plate(w http.ResponseWriter, r *http.Request) {
	plateOnce.Do(func() {
		set, err := handlers.Load()
		if err != nil {
			plateErr = err
			return
		}
		plateHandler = set.Plate
	})

	if plateErr != nil {
		api.WriteInternalServerError(w, plateErr)
		return
	}
	plateHandler.ServeHTTP(w, r)
}
