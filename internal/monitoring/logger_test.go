package monitoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("decoded %d frames", 3)
	assert.Equal(t, []string{"decoded 3 frames"}, got)

	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("muted") })
	assert.Len(t, got, 1, "muted logger must not reach the previous one")
}

func TestPrefixed(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	logf := Prefixed("[rtdump] ")
	logf("frame %d: %s", 7, "truncated")
	assert.Equal(t, []string{"[rtdump] frame 7: truncated"}, got)

	// Bound to the logger current at construction, not to later ones.
	SetLogger(nil)
	logf("still delivered")
	assert.Equal(t, []string{"[rtdump] frame 7: truncated", "[rtdump] still delivered"}, got)
}

func TestPrefixed_InstalledAsLogf(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	SetLogger(Prefixed("[rtdump] "))

	done := make(chan struct{})
	go func() {
		defer close(done)
		Logf("capture file reading complete: %d packets", 1)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Logf did not return")
	}
	assert.Equal(t, []string{"[rtdump] capture file reading complete: 1 packets"}, got)
}

func TestUsePrefix(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	base := func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	}
	SetLogger(base)

	restore := UsePrefix("[rtbuild] ")
	Logf("wrote %d frames", 2)
	restore()
	Logf("plain")

	assert.Equal(t, []string{"[rtbuild] wrote 2 frames", "plain"}, got)
}

func TestLogf_Default(t *testing.T) {
	assert.NotNil(t, Logf)
	assert.NotPanics(t, func() { Logf("test message: %s", "value") })
}
