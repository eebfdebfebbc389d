// Package tlsutil loads TLS credentials for the offer engine's gRPC server.
package tlsutil

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc/credentials"
)

// ServerTLSConfig loads TLS credentials for a gRPC server from cert and key files.
func ServerTLSConfig(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}
	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}
