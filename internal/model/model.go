// Package model holds the entities read from the store and the request and
// response payloads exchanged with clients.
//
// Request payloads bind path parameters with `param` tags and body fields with
// `json` tags. Body fields are pointers: a field missing from the body reaches
// the store as NULL and is rejected there, so the API does no validation of
// its own beyond type coercion.
package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// StatusDeleted is the status marker returned by every successful delete.
const StatusDeleted = "deleted"

// StatusResponse is the body of a successful delete.
type StatusResponse struct {
	Status string `json:"status"`
}

// Deleted returns the delete confirmation body.
func Deleted() StatusResponse {
	return StatusResponse{Status: StatusDeleted}
}
