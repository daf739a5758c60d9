// Package postgres implements the store interfaces on PostgreSQL via the
// pgx stdlib driver.
package postgres
