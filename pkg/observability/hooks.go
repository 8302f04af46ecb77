// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about positioner transitions and HTTP traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hook arguments are plain values so this package imports nothing from the
// rest of the module.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPositionerHooks(&myPositionerHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Positioner().OnPress(ctx, string(target), x, y)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Positioner Hooks
// =============================================================================

// PositionerHooks receives committed transitions from a positioner.
type PositionerHooks interface {
	// Drag events
	OnPress(ctx context.Context, target string, x, y int)
	OnMove(ctx context.Context, top, left int)
	OnRelease(ctx context.Context)

	// Selection events
	OnSelect(ctx context.Context, target string)
	OnDeselect(ctx context.Context)

	// OnNudge records a keyboard nudge and the resulting position.
	OnNudge(ctx context.Context, key string, top, left int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP host.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPositionerHooks is a no-op implementation of PositionerHooks.
type NoopPositionerHooks struct{}

func (NoopPositionerHooks) OnPress(context.Context, string, int, int) {}
func (NoopPositionerHooks) OnMove(context.Context, int, int)          {}
func (NoopPositionerHooks) OnRelease(context.Context)                 {}
func (NoopPositionerHooks) OnSelect(context.Context, string)          {}
func (NoopPositionerHooks) OnDeselect(context.Context)                {}
func (NoopPositionerHooks) OnNudge(context.Context, string, int, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	positionerHooks PositionerHooks = NoopPositionerHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetPositionerHooks registers custom positioner hooks.
// This should be called once at application startup before any events flow.
func SetPositionerHooks(h PositionerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		positionerHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Positioner returns the registered positioner hooks.
func Positioner() PositionerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return positionerHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	positionerHooks = NoopPositionerHooks{}
	httpHooks = NoopHTTPHooks{}
}
