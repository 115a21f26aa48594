// Package client contains the journal client's transport and local
// storage bootstrap.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the client services use.
//  2. GRPCClient implements it over the JSON-coded Journal gRPC service. It
//     injects the access token into outgoing metadata, refreshes it once
//     when the server reports "token expired", and maps status codes to
//     sentinel errors.
//  3. InitDatabase and RunMigrations open the local SQLite file and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Transport failures surface as ErrUnavailable or ErrUnauthorized. Journal
// rule violations surface as the shared sentinels from internal/common
// (ErrNotActiveShift, ErrValidation, ErrorNotFound and so on), wrapped with
// the server's message, so callers match them with errors.Is.
package client
