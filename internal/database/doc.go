// Package database provides the postgres-backed score store for
// deployments that want durable score history.
package database
