package async

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestFutureResult(t *testing.T) {
	var g errgroup.Group
	f := Go(&g, context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, g.Wait())

	v, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFailureCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	g, ctx := errgroup.WithContext(context.Background())

	blocked := Go(g, ctx, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	failed := Go(g, ctx, func(ctx context.Context) (string, error) {
		return "", boom
	})

	assert.ErrorIs(t, g.Wait(), boom)

	_, err := failed.Result()
	assert.ErrorIs(t, err, boom)
	_, err = blocked.Result()
	assert.ErrorIs(t, err, context.Canceled)
}
