package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the catalog tables if they do not exist yet. The
// link tables use a composite primary key so an exercise cannot be
// associated with the same muscle or group twice.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'basic',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS muscle_groups (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			image VARCHAR(512) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS muscles (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			image VARCHAR(512),
			large_image VARCHAR(512),
			group_id BIGINT UNSIGNED NOT NULL,
			KEY idx_muscles_group (group_id),
			CONSTRAINT fk_muscles_group FOREIGN KEY (group_id) REFERENCES muscle_groups(id)
		)`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			image VARCHAR(512) NOT NULL,
			video VARCHAR(512),
			created_by BIGINT UNSIGNED NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			votes BIGINT NOT NULL DEFAULT 0,
			KEY idx_exercises_created_by (created_by),
			CONSTRAINT fk_exercises_user FOREIGN KEY (created_by) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS exercise_muscle_links (
			exercise_id BIGINT UNSIGNED NOT NULL,
			muscle_id BIGINT UNSIGNED NOT NULL,
			PRIMARY KEY (exercise_id, muscle_id),
			CONSTRAINT fk_eml_exercise FOREIGN KEY (exercise_id) REFERENCES exercises(id),
			CONSTRAINT fk_eml_muscle FOREIGN KEY (muscle_id) REFERENCES muscles(id)
		)`,
		`CREATE TABLE IF NOT EXISTS exercise_group_links (
			exercise_id BIGINT UNSIGNED NOT NULL,
			group_id BIGINT UNSIGNED NOT NULL,
			PRIMARY KEY (exercise_id, group_id),
			CONSTRAINT fk_egl_exercise FOREIGN KEY (exercise_id) REFERENCES exercises(id),
			CONSTRAINT fk_egl_group FOREIGN KEY (group_id) REFERENCES muscle_groups(id)
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
