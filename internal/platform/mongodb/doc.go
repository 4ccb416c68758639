// Package mongodb implements the store interfaces on MongoDB using the
// official driver. Users, profiles and posts are stored as one document
// each, with likes, comments, experience and education embedded.
// Uniqueness of user emails, profile owners and profile handles is enforced
// by the unique indexes created in EnsureIndexes.
package mongodb
