package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the three tables on first start. The
// reservations foreign key is declared ON DELETE CASCADE: deleting a
// resource removes its dependent reservations so no orphan rows remain
// queryable.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		domain       VARCHAR(32)  NOT NULL,
		name         VARCHAR(255) NOT NULL,
		make         VARCHAR(255) NULL,
		model        VARCHAR(255) NULL,
		year         INT          NULL,
		kind         VARCHAR(64)  NULL,
		age          INT          NULL,
		capacity     INT          NULL,
		availability BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_resources_domain (domain)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		resource_id      BIGINT UNSIGNED NOT NULL,
		domain           VARCHAR(32)  NOT NULL,
		customer_name    VARCHAR(255) NOT NULL,
		contact_number   VARCHAR(64)  NULL,
		email            VARCHAR(255) NULL,
		address          VARCHAR(512) NULL,
		duration_minutes INT          NULL,
		created_at       TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_resource (resource_id),
		CONSTRAINT fk_reservations_resource FOREIGN KEY (resource_id)
			REFERENCES resources (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS music_records (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		artist         VARCHAR(255) NOT NULL,
		album          VARCHAR(255) NOT NULL,
		genre          VARCHAR(64)  NOT NULL,
		price_cents    INT UNSIGNED NOT NULL DEFAULT 0,
		stock_quantity INT UNSIGNED NOT NULL DEFAULT 0,
		created_at     TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist
// yet. It is idempotent and safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedDemoData inserts a handful of sample rows for local development
// when the resources table is empty. It does nothing when any resource
// already exists.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO resources (domain, name, make, model, year) VALUES (?, ?, ?, ?, ?)`,
			[]any{"vehicle", "Toyota Camry 2023", "Toyota", "Camry", 2023}},
		{`INSERT INTO resources (domain, name, make, model, year) VALUES (?, ?, ?, ?, ?)`,
			[]any{"vehicle", "Honda Civic 2022", "Honda", "Civic", 2022}},
		{`INSERT INTO resources (domain, name, capacity) VALUES (?, ?, ?)`,
			[]any{"party_hall", "Grand Ballroom", 250}},
		{`INSERT INTO resources (domain, name, capacity) VALUES (?, ?, ?)`,
			[]any{"party_hall", "Garden Pavilion", 120}},
		{`INSERT INTO resources (domain, name, kind, age) VALUES (?, ?, ?, ?)`,
			[]any{"pet", "Buddy", "Dog", 3}},
		{`INSERT INTO resources (domain, name, kind, age) VALUES (?, ?, ?, ?)`,
			[]any{"pet", "Whiskers", "Cat", 2}},
		{`INSERT INTO music_records (artist, album, genre, price_cents, stock_quantity) VALUES (?, ?, ?, ?, ?)`,
			[]any{"Artist1", "Album1", "Genre1", 1099, 5}},
		{`INSERT INTO music_records (artist, album, genre, price_cents, stock_quantity) VALUES (?, ?, ?, ?, ?)`,
			[]any{"Artist2", "Album2", "Genre2", 1599, 3}},
	}
	for _, s := range seeds {
		if _, err := db.ExecContext(ctx, s.query, s.args...); err != nil {
			return err
		}
	}
	return nil
}
