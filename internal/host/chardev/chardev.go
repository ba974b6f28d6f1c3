// Package chardev simulates the host's character-device consumer surface:
// open creates a session, read blocks for one sample, close releases it.
// It is intentionally not a real /dev node (device lifecycle and hardware
// probing are out of scope); it is the in-process stand-in the CLI host
// opens and reads against.
package chardev

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neox5/simtemp/engine"
)

// Device is an open consumer handle against an engine, logged the way the
// CLI host logs lifecycle events.
type Device struct {
	log     *slog.Logger
	session *engine.Session
	name    string
}

// Open creates a fresh session on eng and logs the open, mirroring the
// "open" half of the consumer session lifecycle the character device
// exposes.
func Open(log *slog.Logger, eng *engine.Engine, name string) *Device {
	if log == nil {
		log = slog.Default()
	}
	d := &Device{
		log:     log,
		session: eng.OpenSession(),
		name:    name,
	}
	d.log.Info("chardev opened", "device", name)
	return d
}

// Read blocks for exactly one sample record, decoding it for callers that
// want the structured form instead of raw bytes.
func (d *Device) Read(ctx context.Context) (engine.Record, error) {
	buf := make([]byte, engine.RecordSize)
	rec, err := d.session.Read(ctx, buf)
	if err != nil {
		d.log.Warn("chardev read failed", "device", d.name, "err", err)
		return engine.Record{}, err
	}
	return rec, nil
}

// Close releases the session and logs the close.
func (d *Device) Close() {
	d.session.Close()
	d.log.Info("chardev closed", "device", d.name)
}

// String implements fmt.Stringer for log-friendly identification.
func (d *Device) String() string {
	return fmt.Sprintf("chardev(%s)", d.name)
}
