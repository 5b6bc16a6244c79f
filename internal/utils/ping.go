package utils

import (
	"fmt"
	"net"
	"time"
)

// PingAddress dials a host:port over TCP and closes the connection.
func PingAddress(address string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}
