package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr  error
	stopped   chan struct{}
	shutdowns int
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdowns++
	close(f.stopped)
	return nil
}

func (f *fakeServer) Addr() string { return "127.0.0.1:0" }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestServe_StartFailureIsReturned(t *testing.T) {
	bindErr := errors.New("listen tcp :5000: bind: address already in use")
	srv := newFakeServer(bindErr)

	err := serve(srv, make(chan os.Signal), time.Second, quietLogger())
	require.ErrorIs(t, err, bindErr)
	require.Zero(t, srv.shutdowns)
}

func TestServe_SignalShutsDownGracefully(t *testing.T) {
	srv := newFakeServer(nil)
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	require.NoError(t, serve(srv, quit, time.Second, quietLogger()))
	require.Equal(t, 1, srv.shutdowns)
}
