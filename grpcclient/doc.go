// Package grpcclient provides a fluent builder for secure gRPC client connections authenticated
// by any auth.Strategy.
//
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext connections. Optional
// methods let you inject strategy headers via interceptors, add custom CA or mTLS credentials,
// and pass extra dial options. StrategyCredentials exposes a strategy as per-RPC credentials for
// callers that prefer grpc.WithPerRPCCredentials.
//
// # Features
//
//   - Fluent builder for gRPC clients
//   - Strategy-based metadata injection via unary and stream interceptors
//   - PerRPCCredentials adapter for any auth.Strategy
//   - Secure-by-default TLS; optional custom CA and mTLS
//   - Additional dial options via WithDialOptions
//
// # Quick Start
//
//	strategy, err := auth.NewClientCredentialsAuth(
//	    "https://auth.example.com/oauth/v2/token",
//	    "client-id",
//	    "client-secret",
//	    "openid profile",
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("server.example.com:9090").
//	    WithStrategy(strategy).
//	    WithTLS("/path/to/ca.crt", "", "", "server.example.com").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := pb.NewYourServiceClient(conn)
//
// # TLS Behavior
//
// TLS is enabled by default with system CAs and TLS 1.2 minimum. WithTLS allows supplying a custom
// root CA and optional client cert/key for mTLS; both cert and key must be provided together.
package grpcclient
