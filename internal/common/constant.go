// Package common contains shared constants and sentinel errors used across
// the journal client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultPageSize is the number of rows returned by one search page.
const DefaultPageSize = 100
