// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cliparse.LoadDotenv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotenv reads a .env file (working directory, then parent) with godotenv.
Variables already set in the environment are not overwritten.

# CLI Flags and Environment Variables

	-p            PORT             Server port (default: 5000)
	-d            DATABASE_URL     Database URL or sqlite file (required)
	-t            DATABASE_TYPE    sqlite or postgres (default: sqlite)
	-jwt-secret   JWT_SECRET       Token signing secret (required)
	-token-ttl    TOKEN_TTL_HOURS  Token lifetime in hours (default: 120)
	-bcrypt-cost  BCRYPT_COST      bcrypt cost (default: 10)
	-cors-origins CORS_ORIGINS     Comma separated origins (default: *)

CLI flags take precedence over environment variables.
*/
package cliparse
