// Package postgres provides the PostgreSQL connection used by the service and
// maps driver errors into the application error taxonomy.
package postgres
