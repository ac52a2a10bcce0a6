package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nfimport/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDegradedImportNotice(ctx context.Context, toEmail, toName string, notice port.DegradedImportNotice) error {
	args := m.Called(ctx, toEmail, toName, notice)
	return args.Error(0)
}
