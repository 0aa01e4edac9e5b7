// Package monitor runs the reputation engine's polling loop: fetch recent
// hashtag interactions, aggregate them per author, recompute scores,
// persist them, push them downstream, and notify authors about
// significant changes.
//
// A cycle is all-or-nothing only at the fetch stage. Once interactions
// are in hand, each author is processed independently: one author's
// failure skips that author and never aborts the rest of the cycle.
package monitor
