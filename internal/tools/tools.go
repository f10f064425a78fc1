// Package tools implements the handlers an agent can invoke mid-conversation
// and the Invoker that dispatches to them by handler name.
package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Handler is a single tool implementation. config is the agent's opaque tool
// configuration and args are the arguments supplied by the LLM directive.
type Handler interface {
	Name() string
	Invoke(ctx context.Context, config, args map[string]any) (string, error)
}

// Invoker dispatches invocations to registered handlers.
// Register every handler before the Invoker is shared between goroutines.
type Invoker struct {
	handlers map[string]Handler
}

// NewInvoker creates an Invoker with the given handlers registered.
func NewInvoker(handlers ...Handler) *Invoker {
	inv := &Invoker{handlers: make(map[string]Handler, len(handlers))}
	for _, h := range handlers {
		inv.Register(h)
	}
	return inv
}

// Register adds h under h.Name(), replacing any handler with the same name.
func (i *Invoker) Register(h Handler) {
	i.handlers[h.Name()] = h
}

// Invoke runs the handler registered under name.
func (i *Invoker) Invoke(ctx context.Context, name string, config, args map[string]any) (string, error) {
	h, ok := i.handlers[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown handler %q", ErrConfiguration, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return h.Invoke(ctx, config, args)
}

// Transport holds the HTTP settings shared by handlers that call external APIs.
type Transport struct {
	Client          *http.Client
	MaxResponseSize int64
}

func (t Transport) client() *http.Client {
	if t.Client == nil {
		return http.DefaultClient
	}
	return t.Client
}

// readBody reads the response body up to the configured cap.
func (t Transport) readBody(resp *http.Response) ([]byte, error) {
	if t.MaxResponseSize <= 0 {
		return io.ReadAll(resp.Body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > t.MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", t.MaxResponseSize)
	}
	return data, nil
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgs, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidArgs, name)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgs, name)
	}
	return s, nil
}
