package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveShortCircuitsPrivateRanges(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status":"success","country":"Nowhere"}`))
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, time.Second)

	testCases := []struct {
		ip       string
		expected string
	}{
		{"127.0.0.1", LocalNetwork},
		{"192.168.1.5", LocalNetwork},
		{"10.0.0.1", LocalNetwork},
		{"172.16.0.1", LocalNetwork},
		{"::1", LocalNetwork},
		{"0.0.0.0", LocalNetwork},
		{"not-an-ip", Unresolved},
		{"", Unresolved},
	}

	for _, tc := range testCases {
		t.Run(tc.ip, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolver.Resolve(context.Background(), tc.ip))
		})
	}

	assert.Equal(t, int32(0), calls.Load(), "private and malformed IPs must not hit the network")
}

func TestResolveSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/8.8.8.8", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","country":"China","regionName":"Beijing","city":"Beijing","isp":"Example ISP"}`))
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, time.Second)
	location := resolver.Resolve(context.Background(), "8.8.8.8")

	assert.Equal(t, "China Beijing Beijing (Example ISP)", location)
}

func TestResolveProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, time.Second)
	assert.Equal(t, Unresolved, resolver.Resolve(context.Background(), "8.8.8.8"))
}

func TestResolveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, time.Second)
	assert.Equal(t, Unresolved, resolver.Resolve(context.Background(), "8.8.8.8"))
}

func TestResolveTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	resolver := NewResolver(server.URL, 50*time.Millisecond)

	start := time.Now()
	location := resolver.Resolve(context.Background(), "8.8.8.8")

	assert.Equal(t, Unresolved, location)
	assert.Less(t, time.Since(start), time.Second, "lookup must respect the resolver timeout")
}

func TestDescribeSkipsBlankFields(t *testing.T) {
	assert.Equal(t, "China Shanghai", describe(geoResponse{Status: "success", Country: "China", City: "Shanghai"}))
	assert.Equal(t, Unresolved, describe(geoResponse{Status: "success"}))
}
