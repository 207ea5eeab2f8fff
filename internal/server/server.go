// Package server exposes the ABA+ pipeline over HTTP. It is a thin adapter
// per spec.md §1's "out of scope" note: request parsing, mode dispatch, and
// JSON marshaling only, no reasoning logic of its own.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/arg-systems/abaplus/internal/parse"
	"github.com/arg-systems/abaplus/internal/pipeline"
)

// request is the body of POST /process: {"aba_text": "..."}.
type request struct {
	ABAText string `json:"aba_text"`
}

// New builds the mux.Router exposing the single /process route.
func New(logger hclog.Logger) *mux.Router {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	r := mux.NewRouter()
	r.HandleFunc("/process", handleProcess(logger)).Methods(http.MethodPost)
	return r
}

func handleProcess(logger hclog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.New().String()
		log := logger.With("request_id", requestID)

		var body request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			log.Warn("malformed request body", "error", err)
			writeError(w, http.StatusBadRequest, "MalformedInput: "+err.Error())
			return
		}

		mode := pipeline.Mode(req.URL.Query().Get("mode"))
		if mode == "" {
			mode = pipeline.Analyze
		}

		fw, err := parse.Parse(body.ABAText)
		if err != nil {
			log.Warn("framework parse failed", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Info("processing request", "mode", mode)
		result, err := pipeline.Run(req.Context(), fw, mode, log)
		if err != nil {
			log.Error("unsupported mode", "mode", mode, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if !result.Success {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}
