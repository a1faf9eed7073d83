package huntglitch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// payloadDumper writes a copy of each outgoing payload to a directory for
// local inspection. It is a diagnostic aid, not a redelivery buffer: dumps
// are best effort and failures never affect delivery.
type payloadDumper struct {
	dir   string
	debug *log.Logger
}

func newPayloadDumper(dir string, debug *log.Logger) (*payloadDumper, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating dump directory: %w", err)
	}
	return &payloadDumper{dir: dir, debug: debug}, nil
}

// dump saves the payload as <timestamp>_<eventid8>.json. Safe to call on a
// nil dumper (dumping disabled).
func (d *payloadDumper) dump(eventID string, body []byte) {
	if d == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	short := eventID
	if len(short) > 8 {
		short = short[:8]
	}
	filename := fmt.Sprintf("%s_%s.json", timestamp, short)

	if err := os.WriteFile(filepath.Join(d.dir, filename), body, 0644); err != nil {
		d.debug.Printf("huntglitch: failed to dump payload %s: %v", short, err)
		return
	}
	d.debug.Printf("huntglitch: saved payload %s (%d bytes) -> %s", short, len(body), filename)
}
