// Package score implements the community-score computation: grouping a raw
// interaction batch by author, the deterministic per-author score
// calculation with time decay, and the change-significance decision.
// Everything here is pure computation; I/O stays with the collaborators.
package score
