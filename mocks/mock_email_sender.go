package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beanvault/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendParseFailure(ctx context.Context, toEmail string, notice port.ParseFailureNotice) error {
	args := m.Called(ctx, toEmail, notice)
	return args.Error(0)
}
