package edsm

import (
	"context"
	"errors"
	"exobio-route-sorter/internal/domain"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
}

func (s *sleepRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *sleepRecorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 2*time.Second, 200*time.Millisecond)
	require.NoError(t, err)

	rec := &sleepRecorder{}
	c.sleep = rec.sleep
	return c, rec
}

func TestResolveParsesCoordinates(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-v1/system" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("systemName"); got != "Col 173 Sector AB-C d1" {
			t.Errorf("systemName = %q", got)
		}
		if got := r.URL.Query().Get("showCoordinates"); got != "1" {
			t.Errorf("showCoordinates = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Col 173 Sector AB-C d1","coords":{"x":1.5,"y":"-2.25","z":3},"coordsLocked":true}`))
	})

	pos, err := c.Resolve(context.Background(), "Col 173 Sector AB-C d1")
	require.NoError(t, err)
	require.Equal(t, domain.Position{X: 1.5, Y: -2.25, Z: 3}, pos)
	require.Equal(t, []time.Duration{200 * time.Millisecond}, rec.calls)
}

func TestResolveFailures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		notFound bool
	}{
		{name: "unknown system empty array", status: 200, body: `[]`, notFound: true},
		{name: "unknown system empty object", status: 200, body: `{}`, notFound: true},
		{name: "no coords", status: 200, body: `{"name":"Sol"}`, notFound: true},
		{name: "missing axis", status: 200, body: `{"name":"Sol","coords":{"x":0,"y":0}}`},
		{name: "non numeric", status: 200, body: `{"name":"Sol","coords":{"x":"east","y":0,"z":0}}`},
		{name: "null axis", status: 200, body: `{"name":"Sol","coords":{"x":null,"y":0,"z":0}}`},
		{name: "malformed json", status: 200, body: `{"name":`},
		{name: "server error", status: 503, body: `busy`},
		{name: "not found status", status: 404, body: `nope`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := c.Resolve(context.Background(), "Sol")
			require.Error(t, err)

			var re *domain.ResolutionError
			require.True(t, errors.As(err, &re))
			require.Equal(t, "Sol", re.System)
			require.Equal(t, tc.notFound, errors.Is(err, domain.ErrSystemNotFound))
			require.Equal(t, 1, rec.count(), "failed calls are paced too")
		})
	}
}

func TestResolveStatusErrorIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Resolve(context.Background(), "Sol")
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusTooManyRequests, he.Code)
	require.Equal(t, int32(1), hits.Load())
}

func TestResolveTransportErrorIsResolutionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second, 0)
	require.NoError(t, err)

	_, err = c.Resolve(context.Background(), "Sol")
	var re *domain.ResolutionError
	require.True(t, errors.As(err, &re))
}

func TestResolveTimeoutIsResolutionFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(srv.URL, 50*time.Millisecond, 0)
	require.NoError(t, err)

	_, err = c.Resolve(context.Background(), "Sol")
	var re *domain.ResolutionError
	require.True(t, errors.As(err, &re))
}

func TestResolveEmptyNameSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })

	_, err := c.Resolve(context.Background(), "  ")
	require.Error(t, err)
	require.Equal(t, int32(0), hits.Load())
	require.Equal(t, 0, rec.count())
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", time.Second, 0)
	require.Error(t, err)

	_, err = NewClient(DefaultBaseURL, time.Second, -time.Second)
	require.Error(t, err)

	c, err := NewClient(DefaultBaseURL+"/", 0, DefaultPace)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, c.baseURL)
	require.Equal(t, DefaultTimeout, c.session.Timeout)
}

func TestMockResolverCountsCalls(t *testing.T) {
	m := NewMockResolver(map[string]domain.Position{"A": {X: 1}})
	m.Fail("B", errors.New("boom"))

	_, err := m.Resolve(context.Background(), "A")
	require.NoError(t, err)
	_, err = m.Resolve(context.Background(), "B")
	require.Error(t, err)
	_, err = m.Resolve(context.Background(), "C")
	require.True(t, errors.Is(err, domain.ErrSystemNotFound))

	require.Equal(t, 1, m.Calls("A"))
	require.Equal(t, 3, m.TotalCalls())
	require.Equal(t, []string{"A", "B", "C"}, m.CallOrder())
}

func TestResolvePaceSurvivesCancelledCaller(t *testing.T) {
	const pace = 150 * time.Millisecond

	var mu sync.Mutex
	var hitTimes []time.Time
	firstHit := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hitTimes = append(hitTimes, time.Now())
		mu.Unlock()
		select {
		case firstHit <- struct{}{}:
		default:
		}
		w.Write([]byte(`{"name":"Sol","coords":{"x":0,"y":0,"z":0}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, time.Second, pace)
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	doneA := make(chan struct{})
	go func() {
		defer close(doneA)
		c.Resolve(ctxA, "Sol")
	}()

	<-firstHit
	cancelA()

	_, err = c.Resolve(context.Background(), "Achenar")
	require.NoError(t, err)
	<-doneA

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, hitTimes, 2)
	require.GreaterOrEqual(t, hitTimes[1].Sub(hitTimes[0]), pace)
}
