package netutil

import (
	"fmt"
	"net"
)

// LoopbackHost is the fixed address convention shared by all verification
// runs. Example processes are expected to bind it, and readiness probes
// connect to it.
const LoopbackHost = "127.0.0.1"

// EphemeralPort asks the kernel for a free TCP port on the loopback
// interface. The listener is closed before returning so the caller's
// subprocess can bind the port exclusively.
//
// The port is not held between release and reuse; callers must ensure no
// other allocation happens concurrently. The core runner guarantees this by
// serializing verification runs.
func EphemeralPort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", LoopbackHost+":0")
	if err != nil {
		return 0, fmt.Errorf("resolve tcp address: %w", err)
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("listen on tcp address: %w", err)
	}

	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		_ = l.Close()
		return 0, fmt.Errorf("unexpected address type: %T", l.Addr())
	}
	port := tcpAddr.Port

	if err := l.Close(); err != nil {
		return 0, fmt.Errorf("release port %d: %w", port, err)
	}
	return port, nil
}
