// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for both the catalog server and the terminal client.

# Server Configuration

ParseFlags returns a Config struct:

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

Fields:

  - Port: listen port (default: 5328)
  - DatabaseURL: connection string (default: file:pokepick.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - UpstreamURL: creature data source (default: https://pokeapi.co/api/v2)
  - PageSize: creatures per page (default: 20)
  - RefreshInterval: catalog index max age (default: 24h)
  - AdminKey: enables POST /api/pokemon/refresh when set

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	UPSTREAM_URL     → -upstream
	PAGE_SIZE        → -page-size
	REFRESH_INTERVAL → -refresh
	ADMIN_KEY        → -admin-key

# Client Configuration

ParseClientFlags returns a ClientConfig. Values resolve in order: flag,
environment variable, TOML config file, default.

	-api        POKEPICK_API         api_base
	-store      POKEPICK_STORE       store_path
	-store-type POKEPICK_STORE_TYPE  store_type (bolt or sqlite)
	-icons      POKEPICK_ICON_BASE   icon_base
	-log        POKEPICK_LOG         log_path
	-debug      POKEPICK_DEBUG=1     debug
	-config     POKEPICK_CONFIG

The config file defaults to <user config dir>/pokepick/config.toml. A
missing file is not an error.

# .env Files

LoadDotEnv reads .env from the working directory. Variables already present
in the environment are not overwritten.
*/
package cliparse
