// Package common contains shared constants and sentinel errors used across
// bizdash components.
package common

// AuthHeaderName is the HTTP header carrying the bearer credential on
// outbound API requests.
const AuthHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in front of the token value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName labels each outgoing request for server-side log
// correlation.
const RequestIDHeaderName = "X-Request-Id"
