// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and ID generation utilities.

# Admin Key

The admin page is guarded by one shared secret (ADMIN_KEY):

	err := auth.ValidateAdminKey(submitted, cfg.AdminKey)

Both values are hashed with SHA-256 and compared in constant time. An unset
secret rejects everything.

# Passwords

Account passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password)

bcrypt reads at most 72 bytes, so longer passwords are refused with
ErrPasswordTooLong instead of being truncated.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Votes store a salted hash of the voter IP, never the address itself:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
