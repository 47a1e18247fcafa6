// Command rtbuild writes capture frames built from a template, either to a
// pcap file or as hex lines on stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/radiotap/internal/config"
	"github.com/banshee-data/radiotap/internal/version"
)

var (
	templateFile = flag.String("template", "", "Frame template (.json or .toml)")
	count        = flag.Int("count", 1, "Number of frames to write")
	pcapOut      = flag.String("pcap", "", "Write a pcap file instead of hex lines")
	payloadHex   = flag.String("payload", "", "Hex 802.11 payload (overrides the template)")
	interval     = flag.Duration("interval", time.Millisecond, "Capture time between frames")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("rtbuild"))
		return
	}
	if *templateFile == "" {
		log.Fatal("-template is required")
	}
	defer setupLogging()()

	tpl, err := config.LoadFrameTemplate(*templateFile)
	if err != nil {
		log.Fatalf("rtbuild: %v", err)
	}
	opts := options{
		count:    *count,
		pcap:     *pcapOut,
		payload:  *payloadHex,
		interval: *interval,
	}
	n, err := run(tpl, opts, time.Now(), os.Stdout)
	if err != nil {
		log.Fatalf("rtbuild: %v", err)
	}
	if opts.pcap != "" {
		log.Printf("wrote %d frames to %s", n, opts.pcap)
	}
}
