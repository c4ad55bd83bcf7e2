// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing.

Settings come from CLI flags with environment-variable fallback; a
.env file in the working directory is loaded first via godotenv.

Storage selection: USE_DATABASE (-use-db) picks the database backend,
in which case DATABASE_URL (-d) is required and DATABASE_DRIVER (-t)
chooses postgres (default) or sqlite. Unset or falsy USE_DATABASE
means the embedded file store under DATA_DIR.

Rebuild settings: OUTPUT_ROOT is the static-site tree (live/, backup/,
staging/ live under it), BUILD_COMMAND and BUILD_WORKDIR configure the
build toolchain invocation.

ADMIN_EMAIL / ADMIN_PASSWORD seed the bootstrap admin account when no
admin exists at startup.
*/
package cliparse
