package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"blogapi/app/auth"
	"blogapi/app/services"

	"github.com/gorilla/mux"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", auth.Challenge)
	}
	sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps a service error onto a status code. notFound is the
// message used when the addressed resource does not exist.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		body := map[string]interface{}{"error": verr.Message}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		sendJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, services.ErrNotFound):
		sendError(w, notFound, http.StatusNotFound)
	case errors.Is(err, services.ErrUnauthorized):
		sendError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrConflict):
		sendError(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads a single JSON object from the request body. Fields the
// target does not declare are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "Invalid JSON: " + err.Error()
		if errors.Is(err, io.EOF) {
			message = "Request body must be a JSON object"
		}
		sendError(w, message, http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses the {id} route variable. Routes constrain it to digits, so
// a failure here means the value overflowed and cannot name a record.
func pathID(w http.ResponseWriter, r *http.Request, notFound string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		sendError(w, notFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}
