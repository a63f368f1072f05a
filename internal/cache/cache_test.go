package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	var c Contatori = Noop{}
	ctx := context.Background()

	n, ok := c.UnreadCount(ctx)
	require.False(t, ok)
	require.Zero(t, n)

	c.SetUnreadCount(ctx, 5)
	n, ok = c.UnreadCount(ctx)
	require.False(t, ok, "il no-op non deve mai rispondere dalla cache")
	require.Zero(t, n)

	c.InvalidateUnread(ctx)
	require.NoError(t, c.Close())
}
