//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/dusk-indust/useradmin/internal/fakeapi"
	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// startService runs a fake user service on a loopback port for the length
// of the test.
func startService(t *testing.T, opts ...fakeapi.Option) *fakeapi.Server {
	t.Helper()

	srv := fakeapi.NewServer(append(opts, fakeapi.WithLogger(zaptest.NewLogger(t)))...)
	require.NoError(t, srv.Start(context.Background(), "127.0.0.1:0"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Stop(ctx)
	})
	return srv
}

// newStore returns a store talking to srv over HTTP.
func newStore(t *testing.T, srv *fakeapi.Server, opts ...userstore.Option) *userstore.Store {
	t.Helper()

	client := userapi.NewHTTPClient(srv.BaseURL(),
		userapi.WithTimeout(5*time.Second),
		userapi.WithLogger(zaptest.NewLogger(t)),
	)
	return userstore.New(client, append([]userstore.Option{
		userstore.WithLogger(zaptest.NewLogger(t)),
	}, opts...)...)
}
