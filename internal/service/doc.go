// Package service implements the use cases of the application: account
// registration and login, profile management and the post feed.
//
// Services receive validated input from the API layer and depend only on
// the repository interfaces in internal/store. Store errors are translated
// into the closed taxonomy of internal/domain before they are returned, so
// callers classify failures with errors.Is against the domain sentinels or
// with domain.CodeOf. Any other error is unexpected.
package service
