// Package respond writes the JSON envelopes returned by the HTTP API.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type success struct {
	Result interface{} `json:"result"`
}

type failure struct {
	Error string `json:"error"`
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, success{Result: data})
}

// Created writes data with status 201.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, success{Result: data})
}

// Fail writes err's message with the given status.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, failure{Error: err.Error()})
}

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to write response")
	}
}
