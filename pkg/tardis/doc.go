// Package tardis implements a client for the Tardis HTTP API
// (https://docs.tardis.dev/api/http). It exposes the instrument metadata
// endpoints: the full instrument list for an exchange and a single
// instrument lookup, both authenticated with a bearer token.
//
// The client is deliberately thin: one request per call, no caching, no
// retries, no rate limiting. Failures are returned as typed errors so
// callers can tell a transport problem from an unexpected payload shape.
package tardis
