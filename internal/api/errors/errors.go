// Пакет errors формирует ответы об ошибках JSON API:
//
//	{"error": {"code": "NOT_FOUND", "message": "Аукцион не найден"}}
//
// Код стабилен и предназначен для клиентов, сообщение только для людей.
package errors

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

type envelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteError пишет ответ с произвольным статусом и кодом.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	var body envelope
	body.Error.Code = code
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// ValidationError: 400, запрос отклонён до обращения к API аукционов.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// UpstreamUnavailable: 502, API аукционов не ответил или прислал мусор.
func UpstreamUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, CodeUpstreamUnavailable, message)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
