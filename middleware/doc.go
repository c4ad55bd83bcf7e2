// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: request start/completion logging with duration
  - CORS: cross-origin headers and preflight handling
  - RequireSession / RequireAdmin: bearer-token auth guards; the
    resolved session is available to handlers via SessionFrom

# Helpers

  - JSONResponse / ErrorResponse: consistent JSON output
  - ParseJSONBody: request body decoding
  - BearerToken / GetClientIP: header extraction
*/
package middleware
