package services

import "fmt"

// InvalidInputError is returned before any upstream call when a request
// parameter is missing or malformed.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NotFoundError means a building or shuttle stop needed by the trip is not
// registered.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// UpstreamError carries the status and error payload of a routing engine
// that refused a request. Status 0 means the engine never answered.
type UpstreamError struct {
	Status  int
	Message string
	Payload any
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (upstream status %d)", e.Message, e.Status)
}
