package authsvc

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/authsvc/mock"
)

func TestServer_Serve(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig("http://localhost:8080")

	srv, err := NewServer(context.Background(), cfg, mock.NewMockTokenProvider(ctrl), testLogger)
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, l) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", l.Addr()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServer_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := testConfig("http://localhost:8080")
	cfg.EncryptionKey = ""
	_, err := NewServer(context.Background(), cfg, mock.NewMockTokenProvider(ctrl), testLogger)
	assert.EqualError(t, err, "encryption key is empty")

	cfg = testConfig("http://localhost:8080")
	cfg.RedisAddr = "127.0.0.1:1"
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = NewServer(ctx, cfg, mock.NewMockTokenProvider(ctrl), testLogger)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestNewServer_WarnsAboutMemorySessions(t *testing.T) {
	ctrl := gomock.NewController(t)

	var buf bytes.Buffer
	logger := pterm.DefaultLogger.WithWriter(&buf)

	_, err := NewServer(context.Background(), testConfig("http://localhost:8080"), mock.NewMockTokenProvider(ctrl), logger)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "AUTH_REDIS_ADDR is not set")
}
