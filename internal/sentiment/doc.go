// Package sentiment implements the text-to-sentiment capability.
//
// The Analyzer is a deterministic lexicon classifier: it cleans tweet text,
// scores it against positive/negative term lists, and adjusts for
// intensifiers and diminishers. It stands behind the domain.Classifier
// interface so a real model service can replace it without touching the
// scoring engine.
package sentiment
