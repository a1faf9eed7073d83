package huntglitch

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPayloadDump(t *testing.T) {
	mock := newMockIngest(http.StatusOK)
	defer mock.Close()

	clearKeyEnv(t)
	dumpDir := filepath.Join(t.TempDir(), "dumps")

	logger, err := New(Config{
		ProjectKey:     "p",
		DeliverableKey: "d",
		Endpoint:       mock.URL(),
		Timeout:        5 * time.Second,
		DumpDir:        dumpDir,
	})
	if err != nil {
		t.Fatal(err)
	}

	out, err := logger.SendLog("Dumped", "saved locally too", "app.go", 3, SeverityInfo, nil, nil)
	if err != nil || !out.Delivered {
		t.Fatalf("Expected delivery to succeed, got %+v, %v", out, err)
	}

	entries, err := os.ReadDir(dumpDir)
	if err != nil {
		t.Fatal("Expected dump directory to exist:", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected exactly 1 dump file, found %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), ".json") {
		t.Errorf("Expected a .json dump file, got %s", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(dumpDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}

	var dumped map[string]any
	if err := json.Unmarshal(data, &dumped); err != nil {
		t.Fatal("Expected the dump to be valid JSON:", err)
	}
	if dumped["error_name"] != "Dumped" {
		t.Errorf("Expected the dumped payload to match the delivery, got %v", dumped["error_name"])
	}
	if id, _ := dumped["event_id"].(string); id == "" || !strings.Contains(entries[0].Name(), id[:8]) {
		t.Errorf("Expected the filename to carry the event ID prefix, got %s", entries[0].Name())
	}
}

func TestDumpDisabledByDefault(t *testing.T) {
	mock := newMockIngest(http.StatusOK)
	defer mock.Close()

	logger := testLogger(t, mock.URL(), 0, false)
	if _, err := logger.SendLog("NoDump", "nothing on disk", "app.go", 1, SeverityInfo, nil, nil); err != nil {
		t.Fatal(err)
	}
	// Nil dumper must be a no-op; reaching here without a panic is the test.
}
