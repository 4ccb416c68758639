// Package mocks provides shared test doubles.
//
// MockJWTService and MockPasswordVerifier use function fields with default
// return values. The store mocks are built on testify/mock so tests can
// assert call order and arguments:
//
//	users := new(mocks.TestifyMockUserStore)
//	users.On("Delete", mock.Anything, id).Return(nil)
package mocks
