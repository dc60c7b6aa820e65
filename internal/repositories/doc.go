// Package repositories provides the SQLite persistence layer for the session store.
//
// [CredentialsRepository] manages the single long-lived credential record and
// [SettingsRepository] manages boolean feature flags (direct streaming, quiet
// mode). Both operate on tables created by the embedded migrations in
// internal/shared.
package repositories
