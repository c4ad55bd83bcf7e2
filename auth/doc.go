// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session management.

# Passwords

Passwords are bcrypt-hashed before they reach storage and the hash is
never serialized to clients:

	hash, err := auth.HashPassword(plaintext)
	ok := auth.CheckPassword(hash, plaintext)

# Sessions

Login issues a random bearer token tracked in an in-process table with
a sliding expiry. Handlers pass the Authorization token to
Sessions.Get; middleware enforces role requirements. The table is
process-local on purpose - the service is single-process, and the
session lifetime matches the process lifetime at worst.
*/
package auth
