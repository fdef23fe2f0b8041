package mocks

import (
	"github.com/stretchr/testify/mock"
)

// CredentialVerifier is a testify mock for model.CredentialVerifier.
type CredentialVerifier struct {
	mock.Mock
}

func NewCredentialVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *CredentialVerifier {
	m := &CredentialVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CredentialVerifier) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}
