// Package server implements the read-only HTTP surface using Echo.
//
// Routes: health (liveness/readiness), metrics (Prometheus), version, and
// the scores API. The server never writes scores; the monitor loop is the
// single writer.
package server
