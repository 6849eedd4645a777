// Package client talks to the remote store that mirrors a user's contacts,
// profile and QR settings.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface). Every data
//     call is scoped by user id, and by record id for contacts.
//  2. PostgresClient, which reaches the remote tables through the pgx
//     database/sql driver and is the only code aware of the snake_case
//     column names.
//  3. OfflineClient, used when no remote is configured. Every call reports
//     ErrNotConfigured.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite cache, and RunRemoteMigrations for the Postgres schema.
//
// # Error Handling
//
// Expected failures never panic. They are reported as sentinel errors that
// callers match with errors.Is. ErrNotFound, ErrUnauthorized and
// ErrNotConfigured all wrap ErrUnavailable, so a caller that only cares
// whether the remote answered can test for that one error.
//
// Calling a data method with an empty user id is a programming error and
// panics.
//
// # Concurrency & Contexts
//
// Implementations are safe for concurrent use. Every call is bounded by the
// timeout given at construction in addition to the caller's context.
package client
