// Package visitor offers visitors over sequences, maps and structs of any type.
// Modules use them to walk nested values without caring about the concrete
// Go type of a collection.
package visitor
