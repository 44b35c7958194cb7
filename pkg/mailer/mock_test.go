package mailer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/sendlater/pkg/storage"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// mapLoader serves attachments from memory.
type mapLoader map[string]string

func (l mapLoader) Open(_ context.Context, location string) (*storage.File, error) {
	content, ok := l[location]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.File{
		Name:        location,
		ContentType: storage.DetectMIME(location, []byte(content)),
		Content:     []byte(content),
	}, nil
}
