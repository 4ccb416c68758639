// Package domain contains the core business entities of the application:
// users, profiles with their embedded experience and education entries, and
// posts with their embedded likes and comments. It also owns the closed error
// taxonomy that the service layer reports and the API layer maps to HTTP
// status codes.
package domain
