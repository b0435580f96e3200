// Package api is the client for the remote Feastverse data service.
//
// The service speaks snake_case JSON and reports failures as
// {"detail": ...}. Wire types live in types.go and convert to the domain
// package's types; the rest of the repo never sees a DTO.
//
// Authentication is a bearer token kept in a TokenStore so it survives
// restarts. Every request passes through a client-side rate limiter.
package api
