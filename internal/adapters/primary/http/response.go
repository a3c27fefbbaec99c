// Package http implements the REST surface with chi.
package http

import (
	"encoding/json"
	"net/http"
)

// ListResponse wraps collection payloads.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func WriteCreated(w http.ResponseWriter, payload interface{}) {
	WriteJSON(w, http.StatusCreated, payload)
}

func WriteList[T any](w http.ResponseWriter, items []T) {
	WriteJSON(w, http.StatusOK, ListResponse[T]{Data: items, Count: len(items)})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
