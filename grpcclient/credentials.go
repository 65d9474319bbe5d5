package grpcclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/Leikaab/apiconfig-sub000/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// StrategyCredentials adapts an auth.Strategy into gRPC per-RPC
// credentials. Header names are lower-cased to satisfy gRPC metadata
// conventions; query parameters have no gRPC equivalent and are
// ignored.
type StrategyCredentials struct {
	strategy auth.Strategy

	// secure controls RequireTransportSecurity. Strategies carry
	// secrets, so this defaults to true; disable only for loopback
	// tests.
	secure bool
}

// NewStrategyCredentials creates per-RPC credentials from a strategy.
func NewStrategyCredentials(strategy auth.Strategy) *StrategyCredentials {
	return &StrategyCredentials{strategy: strategy, secure: true}
}

// AllowInsecureTransport permits use on connections without transport
// security. Intended for tests against loopback servers.
func (c *StrategyCredentials) AllowInsecureTransport() *StrategyCredentials {
	c.secure = false
	return c
}

// GetRequestMetadata implements credentials.PerRPCCredentials.
func (c *StrategyCredentials) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	if err := auth.EnsureFresh(ctx, c.strategy); err != nil {
		return nil, fmt.Errorf("grpcclient: %w", err)
	}

	headers, err := c.strategy.PrepareHeaders()
	if err != nil {
		return nil, fmt.Errorf("grpcclient: prepare headers: %w", err)
	}

	md := make(map[string]string, len(headers))
	for k, v := range headers {
		md[strings.ToLower(k)] = v
	}
	return md, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials.
func (c *StrategyCredentials) RequireTransportSecurity() bool {
	return c.secure
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that
// injects the strategy's headers into outgoing request metadata.
func UnaryClientInterceptor(strategy auth.Strategy) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx, err := contextWithStrategyHeaders(ctx, strategy)
		if err != nil {
			return err
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that
// injects the strategy's headers into outgoing request metadata.
func StreamClientInterceptor(strategy auth.Strategy) grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		ctx, err := contextWithStrategyHeaders(ctx, strategy)
		if err != nil {
			return nil, err
		}
		return streamer(ctx, desc, cc, method, opts...)
	}
}

func contextWithStrategyHeaders(ctx context.Context, strategy auth.Strategy) (context.Context, error) {
	if err := auth.EnsureFresh(ctx, strategy); err != nil {
		return nil, fmt.Errorf("grpcclient: %w", err)
	}

	headers, err := strategy.PrepareHeaders()
	if err != nil {
		return nil, fmt.Errorf("grpcclient: prepare headers: %w", err)
	}

	for k, v := range headers {
		ctx = metadata.AppendToOutgoingContext(ctx, strings.ToLower(k), v)
	}
	return ctx, nil
}
