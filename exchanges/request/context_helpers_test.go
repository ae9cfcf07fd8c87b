package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVerbose(t *testing.T) {
	t.Parallel()
	require.False(t, IsVerbose(context.Background(), false))
	require.True(t, IsVerbose(context.Background(), true))
	require.True(t, IsVerbose(WithVerbose(context.Background()), false))
	require.False(t, IsVerbose(context.WithValue(context.Background(), contextVerboseFlag, false), false))
	require.False(t, IsVerbose(context.WithValue(context.Background(), contextVerboseFlag, "bruh"), false))
	require.True(t, IsVerbose(context.WithValue(context.Background(), contextVerboseFlag, true), false))
}
