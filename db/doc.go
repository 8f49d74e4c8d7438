// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open selects the driver from the configured type:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (foreign keys on, single connection)

# Schema Creation

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

	app_user 1──* contest (admin_id)
	contest  1──* pick    (ON DELETE CASCADE)
	app_user 1──* pick    (user_id)

pick carries UNIQUE (contest_id, user_id), so a user holds at most one
pick per contest. contest carries CHECK (end_date > start_date).
*/
package db
