package server

import (
	"encoding/json"
	"net/http"

	"github.com/samber/oops"
)

// CodeUnauthenticated marks requests with no resolvable caller.
const CodeUnauthenticated = "UNAUTHENTICATED"

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var codeStatus = map[string]int{
	"NOT_FOUND":         http.StatusNotFound,
	"FORBIDDEN":         http.StatusForbidden,
	"VALIDATION":        http.StatusBadRequest,
	"CONFLICT":          http.StatusConflict,
	CodeUnauthenticated: http.StatusUnauthorized,
}

// writeError maps a tagged error to its HTTP status and a stable JSON
// envelope. Errors without a known code are internal.
func writeError(w http.ResponseWriter, err error) {
	code := "INTERNAL"
	msg := "internal error"
	if oerr, ok := oops.AsOops(err); ok {
		if c, ok := oerr.Code().(string); ok && c != "" {
			code = c
		}
		msg = oerr.Error()
	}
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
