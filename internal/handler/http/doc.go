// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the auth
// REST API. Cross-cutting concerns such as cookie-based token gating, request
// tracing, and access logging are handled in this package before requests are
// delegated to the service layer. All client-facing responses use the shared
// {message, target, id} envelope.
package http
