// Command huntglitch-devserver is a local stand-in for the HuntGlitch
// ingestion endpoint. It accepts the client's POST payloads, prints a
// summary to the console and saves each payload to the ./logs directory.
// Point the client at it with HUNTGLITCH_ENDPOINT=http://localhost:8311/v1/log.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type incomingLog struct {
	ProjectKey     string            `json:"project_key"`
	DeliverableKey string            `json:"deliverable_key"`
	EventID        string            `json:"event_id"`
	ErrorName      string            `json:"error_name"`
	ErrorValue     string            `json:"error_value"`
	SourceFile     string            `json:"source_file"`
	SourceLine     int               `json:"source_line"`
	Severity       string            `json:"severity"`
	AdditionalData map[string]any    `json:"additional_data"`
	Tags           map[string]string `json:"tags"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

func main() {
	http.HandleFunc("POST /v1/log", handleLog)
	fmt.Println("HuntGlitch dev server starting on :8311")
	fmt.Println("Saving payloads to ./logs/ directory")

	os.MkdirAll("logs", 0755)

	log.Fatal(http.ListenAndServe(":8311", nil))
}

func handleLog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusInternalServerError)
		return
	}

	var entry incomingLog
	if err := json.Unmarshal(body, &entry); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if entry.ProjectKey == "" || entry.DeliverableKey == "" {
		http.Error(w, "Missing project_key or deliverable_key", http.StatusUnauthorized)
		return
	}

	eventID := entry.EventID
	if len(eventID) > 8 {
		eventID = eventID[:8]
	}

	// Save the raw payload with a timestamped filename
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.json", timestamp, eventID)
	if err := os.WriteFile(filepath.Join("logs", filename), body, 0644); err != nil {
		log.Printf("Error saving payload %s: %v", eventID, err)
		http.Error(w, "Failed to save payload", http.StatusInternalServerError)
		return
	}

	log.Printf("[%s] %s %s:%d %s: %s (%d bytes) -> %s",
		eventID, entry.Severity, entry.SourceFile, entry.SourceLine,
		entry.ErrorName, entry.ErrorValue, len(body), filename)

	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, "Logged event %s\n", entry.EventID)
}
