//go:build !pcap
// +build !pcap

package capture

import "context"

// ReadFileBPF is a stub implementation when PCAP support is disabled.
// Build with -tags=pcap to enable it.
func (Reader) ReadFileBPF(ctx context.Context, path, filter string, fn Handler) (int, error) {
	return 0, ErrPcapDisabled
}
