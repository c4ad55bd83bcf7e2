// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method+pattern routing on http.ServeMux. Public
gallery reads need no auth; /api/auth/* needs any live session; the
rest of the admin surface needs an admin session. Everything outside
/api and /uploads falls through to the static file server over the
live prerendered-site directory.
*/
package router
