package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCenterExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(3*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.now = func() time.Time { return now }

	c.Notify(LevelSuccess, "Steps saved successfully!")
	now = now.Add(2 * time.Second)
	c.Notify(LevelError, "Please enter valid steps")

	pending := c.Pending()
	require.Len(t, pending, 2)
	require.Equal(t, LevelSuccess, pending[0].Level)
	require.NotEqual(t, pending[0].ID, pending[1].ID)

	now = now.Add(1500 * time.Millisecond)
	pending = c.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, "Please enter valid steps", pending[0].Message)
}

func TestCenterDrainConsumes(t *testing.T) {
	c := NewCenter(0, nil)
	c.Notify(LevelSuccess, "Logged out successfully")

	require.Len(t, c.Drain(), 1)
	require.Empty(t, c.Drain())
}
