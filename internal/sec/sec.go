// Package sec provides authentication and security primitives for the
// product API.
//
// # Authentication
//
// Clients exchange a username and password at the login endpoint for a bearer
// token: an HS256-signed JWT carrying the username and an expiry. Mutating
// endpoints require the token in an `Authorization: Bearer <token>` header.
// Tokens are stateless; the server keeps no session table and validity is
// decided by signature and expiry alone.
//
// IMPORTANT: the signing secret must be kept private, and TLS must be used in
// production to protect credentials and tokens in transit.
//
// # Components
//
//   - [Credentials], [StaticCredentials]: pluggable username/password checks
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
//   - [Tokens]: issues and verifies signed bearer tokens
//   - [Authenticator]: login flow, header parsing, and echo middleware
//   - [GetClaims], [SetClaims]: context accessors for verified claims
package sec
