package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/banshee-data/radiotap/internal/capture"
	"github.com/banshee-data/radiotap/internal/config"
	"github.com/banshee-data/radiotap/internal/monitoring"
)

type options struct {
	count    int
	pcap     string
	payload  string
	interval time.Duration
}

// setupLogging prefixes tool log lines. The returned func undoes it.
func setupLogging() func() {
	return monitoring.UsePrefix("[rtbuild] ")
}

// run writes o.count frames from tpl, the first captured at start, and
// returns how many were written.
func run(tpl *config.FrameTemplate, o options, start time.Time, out io.Writer) (int, error) {
	if o.count < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", o.count)
	}
	if o.payload != "" {
		tpl.Payload = &o.payload
	}
	payload, err := tpl.GetPayload()
	if err != nil {
		return 0, err
	}

	if o.pcap == "" {
		for i := range o.count {
			data, err := tpl.Build(i).Bytes()
			if err != nil {
				return i, fmt.Errorf("encode frame %d: %w", i+1, err)
			}
			if _, err := fmt.Fprintln(out, hex.EncodeToString(append(data, payload...))); err != nil {
				return i, err
			}
		}
		return o.count, nil
	}

	f, err := os.Create(o.pcap)
	if err != nil {
		return 0, fmt.Errorf("failed to create pcap file: %w", err)
	}
	n, err := writeFrames(f, tpl, o, start, payload)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", o.pcap, cerr)
	}
	return n, err
}

func writeFrames(w io.Writer, tpl *config.FrameTemplate, o options, start time.Time, payload []byte) (int, error) {
	pw, err := capture.NewWriter(w)
	if err != nil {
		return 0, err
	}
	for i := range o.count {
		ts := start.Add(time.Duration(i) * o.interval)
		if err := pw.WriteFrame(ts, tpl.Build(i), payload); err != nil {
			return pw.Count(), err
		}
	}
	monitoring.Logf("wrote %d frames, %d byte payload", pw.Count(), len(payload))
	return pw.Count(), nil
}
