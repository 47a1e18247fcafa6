//go:build pcap
// +build pcap

package capture

import (
	"context"
	"fmt"

	"github.com/google/gopacket/pcap"

	"github.com/banshee-data/radiotap/internal/monitoring"
)

// ReadFileBPF reads a capture file through libpcap, keeping only packets that
// match filter. An empty filter keeps everything.
// This method is only available when building with the 'pcap' build tag.
func (rd Reader) ReadFileBPF(ctx context.Context, path, filter string, fn Handler) (int, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open capture file %s: %w", path, err)
	}
	defer handle.Close()

	if lt := handle.LinkType(); lt != LinkType {
		return 0, fmt.Errorf("%s: %w: got %s", path, ErrLinkType, lt)
	}
	if filter != "" {
		if err := handle.SetBPFFilter(filter); err != nil {
			return 0, fmt.Errorf("failed to set BPF filter '%s': %w", filter, err)
		}
		monitoring.Logf("capture BPF filter set: %s", filter)
	}
	return rd.readPackets(ctx, handle, fn)
}
