// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credentials, secret digests, and ID generation.

# Tokens

Bearer tokens are HS256 JWTs carrying the user id in the "uid" claim:

	token, err := auth.IssueToken(userID, secret, ttl, clock.Now())
	userID, err := auth.ParseToken(token, secret, clock.Now())

ParseToken only accepts HS256 and rejects expired tokens. Every failure
wraps ErrInvalidToken.

# Secret Digests

Contest passwords and account passwords are stored as salted bcrypt digests:

	hash, err := auth.HashSecret(password, cfg.BcryptCost)
	err := auth.CompareSecret(hash, attempt) // ErrSecretMismatch

# ID Generation

	id := auth.GenerateID() // random UUID string
*/
package auth
