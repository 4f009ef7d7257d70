package zoho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardSuccess(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Write([]byte("<html>thanks</html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL}, nil)
	status, body, err := client.Forward(context.Background(), "First+Name=Mary&xnQsjsdp=tok")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>thanks</html>", body)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "First+Name=Mary&xnQsjsdp=tok", gotBody)
}

func TestForwardNonSuccessStatusIsNotAnErrorByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream sad"))
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL}, nil)
	status, body, err := client.Forward(context.Background(), "a=b")

	// Historical contract: a completed call is a success regardless of status.
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "upstream sad", body)
}

func TestForwardStrictStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, StrictStatus: true}, nil)
	status, _, err := client.Forward(context.Background(), "a=b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestForwardConnectionError(t *testing.T) {
	client := NewClient(Config{Endpoint: "http://127.0.0.1:1"}, nil)
	_, _, err := client.Forward(context.Background(), "a=b")
	require.Error(t, err)
}

func TestForwardTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-done
	}))
	defer srv.Close()
	defer close(done)

	client := NewClient(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	start := time.Now()
	_, _, err := client.Forward(context.Background(), "a=b")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "forward must be bounded by the configured timeout")
}

func TestForwardHonorsContextCancel(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-done
	}))
	defer srv.Close()
	defer close(done)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{Endpoint: srv.URL}, nil)
	_, _, err := client.Forward(ctx, "a=b")
	require.Error(t, err)
}
