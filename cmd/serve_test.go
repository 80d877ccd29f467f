package main

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownServerDrainsInflightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})}
	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.Serve(ln) }()

	reqDone := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			reqDone <- 0
			return
		}
		resp.Body.Close()
		reqDone <- resp.StatusCode
	}()

	// Let the request reach the handler before shutting down.
	time.Sleep(50 * time.Millisecond)
	shutdownServer(srv)

	// A drained shutdown lets the in-flight request complete normally.
	assert.Equal(t, http.StatusOK, <-reqDone)
	assert.ErrorIs(t, <-serveDone, http.ErrServerClosed)
}
