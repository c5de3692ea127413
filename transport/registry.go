package transport

import (
	"fmt"
	"sync"
)

var (
	registry = make(map[string]func() (Transport, error))
	mu       sync.RWMutex
)

// Register adds a transport factory to the registry.
// This is typically called from a transport package's init() function.
func Register(name string, factory func() (Transport, error)) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = factory
}

// Get retrieves a transport by name.
// Returns an error if the transport is not registered.
func Get(name string) (Transport, error) {
	mu.RLock()
	factory, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown transport: %q (available: %v)", name, Available())
	}

	return factory()
}

// Available returns the names of all registered transports.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a transport is registered.
func IsRegistered(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}
