package bridge

import (
	"context"
	"testing"
	"time"

	"healthmate/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavSurface_CommandRoundTrip(t *testing.T) {
	surface := newNavSurface()
	ctx := context.Background()

	require.NoError(t, surface.LoadURL(ctx, "https://accounts.google.com/o/oauth2/auth"))

	url, ok := surface.nextCommand(ctx)
	require.True(t, ok)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth", url)
}

func TestNavSurface_NextCommandHonorsContext(t *testing.T) {
	surface := newNavSurface()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := surface.nextCommand(ctx)
	assert.False(t, ok)
}

func TestNavSurface_LoadURLFailsWhenQueueStalled(t *testing.T) {
	surface := newNavSurface()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	for i := 0; i < commandBuffer; i++ {
		require.NoError(t, surface.LoadURL(ctx, "https://example.com"))
	}

	err := surface.LoadURL(ctx, "https://example.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNavSurface_OfferDropsWhenFull(t *testing.T) {
	surface := newNavSurface()
	event := entity.NavigationEvent{Stage: entity.StageDidNavigate, URL: "https://example.com"}

	for i := 0; i < eventBuffer; i++ {
		assert.True(t, surface.offer(event))
	}
	// Nothing drains the channel once the handshake settled; further
	// observations are dropped, never blocked on.
	assert.False(t, surface.offer(event))
}
