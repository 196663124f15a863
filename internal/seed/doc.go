// Package seed populates a database with default data for preview and test
// environments. Seeding is idempotent: running it any number of times yields
// the same database state as running it once.
package seed
