package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleMessage(t *testing.T) {
	t.Run("valid event appends a log line", func(t *testing.T) {
		dir := t.TempDir()
		ev := ReservationAcceptedEvent{
			ReservationID: 7,
			Domain:        "pet",
			ResourceID:    3,
			ResourceName:  "Buddy",
			CustomerName:  "Jane Doe",
			AcceptedAt:    "2026-09-01T10:00:00Z",
		}
		body, err := json.Marshal(ev)
		if err != nil {
			t.Fatal(err)
		}
		if err := handleMessage(dir, body); err != nil {
			t.Fatalf("handleMessage: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "reservation.log"))
		if err != nil {
			t.Fatalf("log file missing: %v", err)
		}
		line := string(data)
		for _, want := range []string{
			"reservation_id=7",
			"domain=pet",
			"resource_id=3",
			`resource="Buddy"`,
			`customer="Jane Doe"`,
			"2026-09-01T10:00:00Z",
		} {
			if !strings.Contains(line, want) {
				t.Errorf("log line missing %q: %s", want, line)
			}
		}
		if !strings.HasSuffix(line, "\n") {
			t.Error("log line is not newline terminated")
		}
	})

	t.Run("lines accumulate", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			body, _ := json.Marshal(ReservationAcceptedEvent{ReservationID: uint64(i + 1), Domain: "vehicle"})
			if err := handleMessage(dir, body); err != nil {
				t.Fatalf("handleMessage #%d: %v", i, err)
			}
		}
		data, err := os.ReadFile(filepath.Join(dir, "reservation.log"))
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.Count(string(data), "\n"); got != 3 {
			t.Fatalf("got %d lines, want 3", got)
		}
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		dir := t.TempDir()
		if err := handleMessage(dir, []byte("{not json")); err == nil {
			t.Fatal("expected an error for malformed JSON")
		}
		if _, err := os.Stat(filepath.Join(dir, "reservation.log")); !os.IsNotExist(err) {
			t.Fatal("malformed message must not create a log file")
		}
	})
}
