package app

import (
	"context"
	"exobio-route-sorter/internal/adapters/cache"
	"exobio-route-sorter/internal/adapters/edsm"
	"exobio-route-sorter/internal/config"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewResolverWithoutStore(t *testing.T) {
	r, err := NewResolver(config.Config{
		EDSMBaseURL: edsm.DefaultBaseURL,
		EDSMTimeout: time.Second,
		CoordStore:  config.StoreNone,
	})
	require.NoError(t, err)
	defer r.Close()

	_, ok := r.CoordinateResolver.(*edsm.Client)
	require.True(t, ok)
}

func TestNewResolverWithSqliteStorePersistsAcrossResolvers(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"name":"Sol","coords":{"x":0,"y":0,"z":0}}`))
	}))
	defer srv.Close()

	cfg := config.Config{
		EDSMBaseURL: srv.URL,
		EDSMTimeout: time.Second,
		CoordStore:  config.StoreSqlite,
		DBPath:      filepath.Join(t.TempDir(), "coords.db"),
	}

	r, err := NewResolver(cfg)
	require.NoError(t, err)
	_, ok := r.CoordinateResolver.(*cache.StoredResolver)
	require.True(t, ok)

	p, err := r.Resolve(context.Background(), "Sol")
	require.NoError(t, err)
	require.Equal(t, domain.Position{}, p)
	require.NoError(t, r.Close())

	r2, err := NewResolver(cfg)
	require.NoError(t, err)
	defer r2.Close()

	_, err = r2.Resolve(context.Background(), "Sol")
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())
}

type countingResolver struct {
	next  ports.CoordinateResolver
	calls atomic.Int32
}

func (c *countingResolver) Resolve(ctx context.Context, system string) (domain.Position, error) {
	c.calls.Add(1)
	return c.next.Resolve(ctx, system)
}

func TestNewResolverWrapsSitBehindStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Sol","coords":{"x":0,"y":0,"z":0}}`))
	}))
	defer srv.Close()

	cfg := config.Config{
		EDSMBaseURL: srv.URL,
		EDSMTimeout: time.Second,
		CoordStore:  config.StoreSqlite,
		DBPath:      filepath.Join(t.TempDir(), "coords.db"),
	}

	counter := &countingResolver{}
	wrap := func(next ports.CoordinateResolver) ports.CoordinateResolver {
		counter.next = next
		return counter
	}

	r, err := NewResolver(cfg, wrap)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "Sol")
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, int32(1), counter.calls.Load())

	r2, err := NewResolver(cfg, wrap)
	require.NoError(t, err)
	defer r2.Close()
	_, err = r2.Resolve(context.Background(), "Sol")
	require.NoError(t, err)
	require.Equal(t, int32(1), counter.calls.Load(), "stored systems never reach the network wrap")
}
