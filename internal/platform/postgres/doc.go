// Package postgres provides PostgreSQL implementations of the store
// interfaces. Users are stored as plain rows; profiles and posts are stored
// as JSONB documents next to the columns that carry their uniqueness and
// ordering constraints. The schema is managed with goose migrations
// embedded in the migrations subpackage.
package postgres
