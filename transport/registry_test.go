package transport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport implements Transport for registry tests.
type mockTransport struct {
	name string
}

func (m *mockTransport) Name() string {
	return m.name
}

func (m *mockTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Content: "mock response"}, nil
}

func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]func() (Transport, error))
}

func TestRegisterAndGet(t *testing.T) {
	tests := []struct {
		name          string
		setup         func()
		transportName string
		wantErr       bool
		wantName      string
	}{
		{
			name: "get existing transport",
			setup: func() {
				Register("existing", func() (Transport, error) {
					return &mockTransport{name: "existing"}, nil
				})
			},
			transportName: "existing",
			wantName:      "existing",
		},
		{
			name:          "get unknown transport",
			setup:         func() {},
			transportName: "unknown",
			wantErr:       true,
		},
		{
			name: "factory returns error",
			setup: func() {
				Register("bad-factory", func() (Transport, error) {
					return nil, errors.New("factory error")
				})
			},
			transportName: "bad-factory",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearRegistry()
			tt.setup()

			tp, err := Get(tt.transportName)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tp.Name())
		})
	}
}

func TestRegister_Overwrite(t *testing.T) {
	clearRegistry()

	Register("test", func() (Transport, error) {
		return &mockTransport{name: "first"}, nil
	})
	Register("test", func() (Transport, error) {
		return &mockTransport{name: "second"}, nil
	})

	tp, err := Get("test")
	require.NoError(t, err)
	assert.Equal(t, "second", tp.Name())
}

func TestGet_ErrorIncludesAvailable(t *testing.T) {
	clearRegistry()

	Register("transport-a", func() (Transport, error) {
		return &mockTransport{name: "transport-a"}, nil
	})
	Register("transport-b", func() (Transport, error) {
		return &mockTransport{name: "transport-b"}, nil
	})

	_, err := Get("unknown")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "unknown")
	assert.Contains(t, err.Error(), "transport-a")
	assert.Contains(t, err.Error(), "transport-b")
}

func TestAvailableAndIsRegistered(t *testing.T) {
	clearRegistry()
	assert.Empty(t, Available())
	assert.False(t, IsRegistered("one"))

	Register("one", func() (Transport, error) { return &mockTransport{}, nil })
	Register("two", func() (Transport, error) { return &mockTransport{}, nil })

	assert.Len(t, Available(), 2)
	assert.True(t, IsRegistered("one"))
	assert.False(t, IsRegistered("three"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	clearRegistry()

	Register("concurrent", func() (Transport, error) {
		return &mockTransport{name: "concurrent"}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = Get("concurrent")
			_ = Available()
			_ = IsRegistered("concurrent")
		}()
		go func() {
			defer wg.Done()
			Register("concurrent", func() (Transport, error) {
				return &mockTransport{name: "concurrent"}, nil
			})
		}()
	}
	wg.Wait()

	assert.True(t, IsRegistered("concurrent"))
}
