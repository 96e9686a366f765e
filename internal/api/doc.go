// Package api handles incoming HTTP requests, request validation and
// response formatting. Handlers adapt HTTP to the store interfaces and the
// payment service; routing lives in cmd/server.
package api
