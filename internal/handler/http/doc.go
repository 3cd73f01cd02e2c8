// Package http implements the REST boundary of the accounts service.
//
// It wires the chi router, decodes request payloads, extracts the caller
// identity from the bearer token and maps service errors onto HTTP status
// codes. Tracing, access logging, request timeouts, CORS and response
// compression are applied here before requests reach the service layer.
package http
