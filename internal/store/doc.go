// Package store defines the storage primitives the services depend on.
//
// Each interface is a small set of find, insert, mutate-and-save and delete
// operations over one document type. Business rules such as "does this user
// already have a profile" live in the service layer; the store only reports
// what it finds through the sentinel errors in errors.go. Adapters for
// MongoDB, PostgreSQL and memory live under internal/platform.
package store
