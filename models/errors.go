package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableError is rendered with the http status code 422
	UnprocessableError = errors.New("unprocessable input")
)

// Ingestion flow errors
var (
	ErrMissingFile = errors.Wrap(BadParameterError, "no file was uploaded")
	ErrParseCsv    = errors.Wrap(UnprocessableError, "could not parse the uploaded file as CSV")
	ErrUpload      = errors.New("failed to upload the file to the staging filesystem")
	ErrSchema      = errors.New("failed to create the warehouse table")
)

// ErrHdfsUnreachable is returned when a WebHDFS endpoint does not answer the
// liveness probe. At startup it is fatal: the process refuses to start if
// neither the primary nor the standby endpoint responds.
var ErrHdfsUnreachable = errors.New("hdfs endpoint is unreachable")
