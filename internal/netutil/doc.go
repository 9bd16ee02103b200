// Package netutil provides ephemeral port acquisition for verification runs.
//
// Ports are obtained by binding a listener on 127.0.0.1:0, reading back the
// kernel-assigned port, and closing the listener so the launched example
// process can bind it. There is no cross-run reservation bookkeeping:
// verification runs are serialized end to end, so at most one ephemeral port
// is in flight at a time.
package netutil
