// Package records holds the owned record types (books and quotes) and the
// service that lists and mutates them. Every mutation goes through
// auth.Authorize before it reaches the store.
package records
