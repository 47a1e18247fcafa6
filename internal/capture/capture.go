// Package capture reads and writes pcap files whose link type is 802.11 with
// a radiotap header, and summarises the 802.11 frame behind the header.
package capture

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/internal/monitoring"
	"github.com/banshee-data/radiotap/internal/timeutil"
)

// LinkType is the only link type these files may carry.
const LinkType = layers.LinkTypeIEEE80211Radio

// DefaultSnapLen is written to the header of new files.
const DefaultSnapLen = 65535

var (
	// ErrStop may be returned by a Handler to end a read early without error.
	ErrStop = errors.New("capture: stop")

	// ErrLinkType is returned for files that do not carry radiotap frames.
	ErrLinkType = errors.New("capture: link type is not 802.11 radiotap")

	// ErrPcapDisabled is returned by ReadFileBPF in builds without libpcap.
	ErrPcapDisabled = errors.New("PCAP support not enabled: rebuild with -tags=pcap to enable BPF filtering")
)

const pcapngMagic = 0x0a0d0d0a

// Packet is one captured frame. Data starts with the radiotap header.
type Packet struct {
	Index     int // 1-based position in the file
	Timestamp time.Time
	Data      []byte
}

// Handler is called for each packet. Data is only valid during the call.
type Handler func(Packet) error

// packetReader is satisfied by pcapgo.Reader, pcapgo.NgReader and pcap.Handle.
type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

// Reader reads capture files. The zero value times reads with the wall clock.
type Reader struct {
	Clock timeutil.Clock
}

func (rd Reader) clock() timeutil.Clock {
	if rd.Clock == nil {
		return timeutil.RealClock{}
	}
	return rd.Clock
}

// ReadFile reads path with a zero Reader.
func ReadFile(ctx context.Context, path string, fn Handler) (int, error) {
	return Reader{}.ReadFile(ctx, path, fn)
}

// ReadFileBPF reads path with a zero Reader, keeping packets that match filter.
func ReadFileBPF(ctx context.Context, path, filter string, fn Handler) (int, error) {
	return Reader{}.ReadFileBPF(ctx, path, filter, fn)
}

// ReadFile calls fn for every packet in the pcap or pcapng file at path and
// returns the number of packets read.
func (rd Reader) ReadFile(ctx context.Context, path string, fn Handler) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open capture file %s: %w", path, err)
	}
	defer f.Close()

	r, err := newReader(bufio.NewReader(f))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return rd.readPackets(ctx, r, fn)
}

// newReader picks the pcapng or classic pcap reader by the file magic.
func newReader(br *bufio.Reader) (packetReader, error) {
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("read file magic: %w", err)
	}

	if binary.LittleEndian.Uint32(magic) == pcapngMagic {
		ng, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, fmt.Errorf("open pcapng: %w", err)
		}
		if lt := ng.LinkType(); lt != LinkType {
			return nil, fmt.Errorf("%w: got %s", ErrLinkType, lt)
		}
		return ng, nil
	}

	r, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	if lt := r.LinkType(); lt != LinkType {
		return nil, fmt.Errorf("%w: got %s", ErrLinkType, lt)
	}
	return r, nil
}

func (rd Reader) readPackets(ctx context.Context, r packetReader, fn Handler) (int, error) {
	clock := rd.clock()
	count := 0
	start := clock.Now()
	for {
		if err := ctx.Err(); err != nil {
			monitoring.Logf("capture reader stopping due to context cancellation (processed %d packets)", count)
			return count, err
		}

		data, ci, err := r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			monitoring.Logf("capture file reading complete: %d packets in %v", count, clock.Since(start))
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("read packet %d: %w", count+1, err)
		}

		count++
		if err := fn(Packet{Index: count, Timestamp: ci.Timestamp, Data: data}); err != nil {
			if errors.Is(err, ErrStop) {
				return count, nil
			}
			return count, err
		}
	}
}

// Writer writes radiotap frames to a classic pcap stream.
type Writer struct {
	w     *pcapgo.Writer
	count int
}

// NewWriter writes the file header to w.
func NewWriter(w io.Writer) (*Writer, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(DefaultSnapLen, LinkType); err != nil {
		return nil, fmt.Errorf("write pcap header: %w", err)
	}
	return &Writer{w: pw}, nil
}

// WriteFrame encodes rt, appends payload and writes the packet. The pcap
// format keeps microsecond timestamps.
func (w *Writer) WriteFrame(ts time.Time, rt radiotap.Radiotap, payload []byte) error {
	data, err := rt.Bytes()
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", w.count+1, err)
	}
	return w.WritePacket(ts, append(data, payload...))
}

// WritePacket writes data as captured, without checking that it starts with
// a valid radiotap header.
func (w *Writer) WritePacket(ts time.Time, data []byte) error {
	ci := gopacket.CaptureInfo{
		Timestamp:     ts,
		CaptureLength: len(data),
		Length:        len(data),
	}
	if err := w.w.WritePacket(ci, data); err != nil {
		return fmt.Errorf("write frame %d: %w", w.count+1, err)
	}
	w.count++
	return nil
}

// Count returns the number of frames written.
func (w *Writer) Count() int {
	return w.count
}
