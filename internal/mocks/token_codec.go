package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/smartsubstation/auth-server/internal/model"
)

// TokenCodec is a testify mock for model.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func NewTokenCodec(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenCodec {
	m := &TokenCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenCodec) Issue(subject string, userID, roleID int64, ttl time.Duration) (string, error) {
	args := m.Called(subject, userID, roleID, ttl)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Verify(token string) (model.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(model.Claims), args.Error(1)
}

func (m *TokenCodec) Decode(token string) (model.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(model.Claims), args.Error(1)
}
