package probe

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen starts a TCP listener that accepts and drops connections.
func listen(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	return ln.Addr().String()
}

// closedAddr returns an address nothing is listening on.
func closedAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestCheckTCPReachable(t *testing.T) {
	addr := listen(t)
	p := New(time.Second, nil)

	for _, scheme := range []string{"tcp", "http", "mysql"} {
		t.Run(scheme, func(t *testing.T) {
			err := p.Check(context.Background(), fmt.Sprintf("%s://%s/path", scheme, addr))
			assert.NoError(t, err)
		})
	}
}

func TestCheckTCPUnreachable(t *testing.T) {
	addr := closedAddr(t)
	p := New(time.Second, nil)

	err := p.Check(context.Background(), "http://"+addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestCheckPostgresUnreachable(t *testing.T) {
	addr := closedAddr(t)
	p := New(time.Second, nil)

	err := p.Check(context.Background(), "postgres://user:secret@"+addr+"/db?sslmode=disable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestCheckInvalidURL(t *testing.T) {
	p := New(time.Second, nil)

	tests := []struct {
		name string
		url  string
		msg  string
	}{
		{"unparseable", "http://[::1", "invalid url"},
		{"no host", "postgres:///db", "has no host"},
		{"plain word", "localhost", "has no host"},
		{"no port no default", "foo://example.invalid", "has no port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(context.Background(), tt.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCheckHonorsCanceledContext(t *testing.T) {
	addr := listen(t)
	p := New(time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Check(ctx, "tcp://"+addr)
	assert.Error(t, err)
}
