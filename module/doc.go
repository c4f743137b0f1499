// Package module provides built-in normalizer modules for sequences, maps,
// time values and structs, and a constructor for the default normalizer.
//
// DateModule accepts any string parseable as a timestamp for denormalization.
// When other string based modules share its priority, registration order
// decides which one wins.
package module
