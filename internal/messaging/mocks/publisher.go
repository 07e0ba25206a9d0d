package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storysite/internal/messaging"
)

// Publisher - мок messaging.Publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, payload messaging.InvalidationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// Invalidator - мок cache.Invalidator.
type Invalidator struct {
	mock.Mock
}

func (m *Invalidator) Invalidate(prefix string) {
	m.Called(prefix)
}
