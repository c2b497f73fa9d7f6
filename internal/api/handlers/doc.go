package handlers

import "encoding/json"

// Envelope is the response body of every /api/v1 endpoint. Successful
// responses carry data; failures carry the HTTP status in code.
type Envelope struct {
	Success bool            `json:"success" doc:"Whether the request succeeded"`
	Message string          `json:"message" example:"Search completed successfully" doc:"Human-readable outcome"`
	Data    json.RawMessage `json:"data,omitempty" doc:"Upstream search result, passed through unchanged"`
	Code    int             `json:"code,omitempty" example:"400" doc:"HTTP status, set on failure"`
}

// Failure builds a failure envelope for the given status.
func Failure(status int, message string) Envelope {
	return Envelope{Success: false, Message: message, Code: status}
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
