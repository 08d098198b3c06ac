package service

import (
	"context"
	"testing"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTypingService(t *testing.T) {
	repo := &mockTypingRepo{}
	pub := &recordingPublisher{}
	svc := NewTypingService(repo, pub, 0)
	require.Equal(t, 5*time.Second, svc.TTL())

	repo.On("Upsert", mock.Anything, "g", "u").Return(&domain.TypingIndicator{GroupID: "g", UserID: "u"}, nil)
	repo.On("Clear", mock.Anything, "g", "u").Return(nil)
	repo.On("ListActive", mock.Anything, "g", 5*time.Second).Return([]domain.TypingIndicator{{UserID: "u"}}, nil)
	repo.On("DeleteStale", mock.Anything, 5*time.Second).Return(int64(3), nil)

	_, err := svc.Touch(context.Background(), "g", "u")
	require.NoError(t, err)
	active, err := svc.Active(context.Background(), "g")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NoError(t, svc.Clear(context.Background(), "g", "u"))

	n, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	require.Equal(t, []string{domain.EventTyping, domain.EventTypingCleared}, pub.types())
}
