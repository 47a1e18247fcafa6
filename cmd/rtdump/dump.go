package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
	"github.com/banshee-data/radiotap/internal/capture"
	"github.com/banshee-data/radiotap/internal/config"
	"github.com/banshee-data/radiotap/internal/monitoring"
	"github.com/banshee-data/radiotap/internal/report"
	"github.com/banshee-data/radiotap/internal/store"
	"github.com/banshee-data/radiotap/internal/timeutil"
)

type options struct {
	pcap    string
	config  string
	json    bool
	db      string
	chart   string
	hist    string
	metrics string
	max     int
	bpf     string
	clock   timeutil.Clock // RealClock when nil
}

type result struct {
	packets int
	decoded int
	errors  int
	runID   string
}

// dumper holds the per-run state shared by the packet handler.
type dumper struct {
	cfg     *config.DumpConfig
	kinds   []field.Kind
	out     io.Writer
	json    bool
	metrics *monitoring.FrameMetrics
	store   *store.Store
	runID   string
	samples []report.Sample
	res     result
}

// setupLogging prefixes tool log lines. The returned func undoes it.
func setupLogging() func() {
	return monitoring.UsePrefix("[rtdump] ")
}

func run(ctx context.Context, o options, out io.Writer) (result, error) {
	cfg := config.DefaultDumpConfig()
	if o.config != "" {
		var err error
		if cfg, err = config.LoadDumpConfig(o.config); err != nil {
			return result{}, err
		}
	}
	if o.max > 0 {
		cfg.MaxFrames = &o.max
	}
	if o.bpf != "" {
		cfg.BPFFilter = &o.bpf
	}
	clock := o.clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	started := clock.Now()

	kinds, err := cfg.KindFilter()
	if err != nil {
		return result{}, err
	}

	d := &dumper{
		cfg:     cfg,
		kinds:   kinds,
		out:     out,
		json:    o.json,
		metrics: monitoring.NewFrameMetrics(),
	}

	if o.db != "" {
		d.store, err = store.Open(o.db)
		if err != nil {
			return result{}, err
		}
		defer d.store.Close()
		r, err := d.store.BeginRun(o.pcap, started)
		if err != nil {
			return result{}, err
		}
		d.runID = r.ID
		d.res.runID = r.ID
	}

	reader := capture.Reader{Clock: clock}
	read := reader.ReadFile
	if filter := cfg.GetBPFFilter(); filter != "" {
		read = func(ctx context.Context, path string, fn capture.Handler) (int, error) {
			return reader.ReadFileBPF(ctx, path, filter, fn)
		}
	}
	d.res.packets, err = read(ctx, o.pcap, d.handle)
	if err != nil {
		return d.res, err
	}

	if d.store != nil {
		if err := d.store.FinishRun(d.runID, clock.Now(), d.res.decoded, d.res.errors); err != nil {
			return d.res, err
		}
	}
	if err := d.writeReports(o); err != nil {
		return d.res, err
	}
	monitoring.Logf("read %d packets in %v", d.res.packets, clock.Since(started))
	return d.res, nil
}

func (d *dumper) handle(p capture.Packet) error {
	if err := d.decode(p); err != nil {
		return err
	}
	if limit := d.cfg.GetMaxFrames(); limit > 0 && p.Index >= limit {
		return capture.ErrStop
	}
	return nil
}

func (d *dumper) decode(p capture.Packet) error {
	rt, payload, err := radiotap.Parse(p.Data)
	if err != nil {
		d.res.errors++
		d.metrics.ObserveError(err)
		monitoring.Logf("packet %d: %v", p.Index, err)
		if d.cfg.GetStopOnError() {
			return fmt.Errorf("packet %d: %w", p.Index, err)
		}
		return nil
	}
	d.res.decoded++
	d.metrics.ObserveFrame(rt.Header)
	d.samples = append(d.samples, report.SampleOf(p.Index, p.Timestamp, rt))

	if d.store != nil {
		if err := d.store.RecordFrame(d.runID, p.Index, p.Timestamp, rt, p.Data); err != nil {
			return err
		}
	}

	var dot11 string
	if s, err := capture.DescribePayload(rt, payload); err == nil {
		dot11 = s.String()
	}

	if d.json {
		return d.writeJSON(p, rt, dot11)
	}
	_, err = fmt.Fprintln(d.out, d.formatLine(p, rt, dot11))
	return err
}

// present returns the kinds to print: each typed kind once, in header order,
// limited to the configured filter.
func (d *dumper) present(rt radiotap.Radiotap) []field.Kind {
	var kinds []field.Kind
	for _, k := range rt.Header.Present {
		if !k.Typed() || slices.Contains(kinds, k) {
			continue
		}
		if d.kinds != nil && !slices.Contains(d.kinds, k) {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

func (d *dumper) formatLine(p capture.Packet, rt radiotap.Radiotap, dot11 string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s len=%d", p.Index, p.Timestamp.UTC().Format(time.RFC3339Nano), rt.Header.Length)
	for _, k := range d.present(rt) {
		fmt.Fprintf(&b, " %s=%v", k, rt.Value(k))
	}
	if dot11 != "" {
		fmt.Fprintf(&b, " | %s", dot11)
	}
	return b.String()
}

type frameJSON struct {
	Index     int                    `json:"index"`
	Timestamp time.Time              `json:"timestamp"`
	Length    int                    `json:"length"`
	Present   []string               `json:"present"`
	Fields    map[string]field.Value `json:"fields"`
	Dot11     string                 `json:"dot11,omitempty"`
}

func (d *dumper) writeJSON(p capture.Packet, rt radiotap.Radiotap, dot11 string) error {
	f := frameJSON{
		Index:     p.Index,
		Timestamp: p.Timestamp.UTC(),
		Length:    rt.Header.Length,
		Present:   make([]string, 0, len(rt.Header.Present)),
		Fields:    make(map[string]field.Value),
		Dot11:     dot11,
	}
	for _, k := range rt.Header.Present {
		f.Present = append(f.Present, k.String())
	}
	for _, k := range d.present(rt) {
		f.Fields[k.String()] = rt.Value(k)
	}
	return json.NewEncoder(d.out).Encode(f)
}

func (d *dumper) writeReports(o options) error {
	if d.res.decoded > 0 {
		if sum, err := report.Summarize(report.Signals(d.samples)); err == nil {
			monitoring.Logf("signal dBm: n=%d mean=%.1f sd=%.1f p50=%.0f p90=%.0f min=%.0f max=%.0f",
				sum.Count, sum.Mean, sum.StdDev, sum.P50, sum.P90, sum.Min, sum.Max)
		}
	}

	if o.chart != "" {
		f, err := os.Create(o.chart)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		err = report.WriteChart(f, d.cfg.GetChartTitle(), d.samples)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	if o.hist != "" {
		if err := report.WriteHistogram(o.hist, d.cfg.GetChartTitle(), report.Signals(d.samples), d.cfg.GetHistogramBins()); err != nil {
			return err
		}
	}
	if o.metrics != "" {
		if err := d.metrics.WriteTextfile(o.metrics); err != nil {
			return err
		}
	}
	return nil
}
