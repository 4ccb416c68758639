package mocks

import "github.com/phrazzld/devlink-api/internal/service/auth"

// MockPasswordVerifier implements auth.PasswordVerifier and
// auth.PasswordHasher for testing.
type MockPasswordVerifier struct {
	// ShouldSucceed selects nil or auth.ErrPasswordMismatch from Compare.
	ShouldSucceed bool

	CompareFn func(hashedPassword, password string) error
	HashFn    func(password string) (string, error)

	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}
	CompareCallCount int
}

var (
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
)

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}

// Hash implements auth.PasswordHasher. Without HashFn it returns
// "hashed:" + password.
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}
