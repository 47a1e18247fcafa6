// Command rtdump decodes the radiotap header of every frame in a capture file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/radiotap/internal/version"
)

var (
	pcapFile    = flag.String("pcap", "", "Capture file to decode (pcap or pcapng, 802.11 radiotap link type)")
	configFile  = flag.String("config", "", "Dump config file (.json or .toml)")
	jsonOutput  = flag.Bool("json", false, "Print one JSON object per frame")
	dbFile      = flag.String("db", "", "SQLite database to record decoded frames in")
	chartFile   = flag.String("chart", "", "Write an HTML chart of signal and noise per frame")
	histFile    = flag.String("hist", "", "Write a PNG histogram of antenna signal")
	metricsFile = flag.String("metrics", "", "Write Prometheus metrics in textfile format")
	maxFrames   = flag.Int("max", 0, "Stop after this many packets (overrides config, 0 keeps it)")
	bpfFilter   = flag.String("bpf", "", "BPF filter (overrides config, needs a -tags=pcap build)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("rtdump"))
		return
	}
	if *pcapFile == "" {
		log.Fatal("-pcap is required")
	}
	defer setupLogging()()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		pcap:    *pcapFile,
		config:  *configFile,
		json:    *jsonOutput,
		db:      *dbFile,
		chart:   *chartFile,
		hist:    *histFile,
		metrics: *metricsFile,
		max:     *maxFrames,
		bpf:     *bpfFilter,
	}
	res, err := run(ctx, opts, os.Stdout)
	if err != nil {
		log.Fatalf("rtdump: %v", err)
	}
	log.Printf("decoded %d of %d packets (%d errors)", res.decoded, res.packets, res.errors)
}
