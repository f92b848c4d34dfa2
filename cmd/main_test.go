package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// --- Test Setup ---

func setupTests(t *testing.T) (string, func()) {
	t.Helper()
	content := []byte(`
entries:
  - employee_id: "100"
    name: "Alexander Smith"
    preferred_name: "Alex"
    type: "vacation"
    start: "2024-01-05"
    end: "2024-01-05"
  - employee_id: "100"
    name: "Alexander Smith"
    preferred_name: "Alex"
    type: "sick"
    start: "2024-01-08"
    end: "2024-01-09"
  - employee_id: "200"
    name: "Jordan Lee"
    type: "vacation"
    start: "2024-01-15"
    end: "2024-01-16"
  - name: "New Year's Day"
    type: "holiday"
    start: "2024-01-01"
    end: "2024-01-01"
`)
	tmpfile, err := os.CreateTemp("", "test_leave.*.yml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpfile.Write(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpfile.Name(), func() {
		os.Remove(tmpfile.Name())
	}
}

// executeCommandText captures plain text output from a command.
func executeCommandText(t *testing.T, args ...string) string {
	t.Helper()
	b := new(bytes.Buffer)

	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)

	// Reset flags to default values before each run
	rootCmd.PersistentFlags().Set("date", "")
	previewCmd.Flags().Set("file", "leave.yml")
	previewCmd.Flags().Set("copy", "false")

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	return b.String()
}

// --- Test Functions ---

func TestPreviewCommand(t *testing.T) {
	tmpFile, cleanup := setupTests(t)
	defer cleanup()

	t.Run("renders the full consolidated schedule", func(t *testing.T) {
		output := executeCommandText(t, "preview", "--file", tmpFile)

		// The Friday entry and the Monday-Tuesday entry merge across
		// the weekend with both leave types.
		if !strings.Contains(output, "Alex: 2024-01-05 to 2024-01-09 (sick, vacation)") {
			t.Errorf("Report missing merged range for Alex, got:\n%s", output)
		}
		if !strings.Contains(output, "Jordan Lee: 2024-01-15 to 2024-01-16 (vacation)") {
			t.Errorf("Report missing range for Jordan Lee, got:\n%s", output)
		}
		if !strings.Contains(output, "New Year's Day: 2024-01-01 (holiday)") {
			t.Errorf("Report missing holiday line, got:\n%s", output)
		}

		// Ordering is case-insensitive by display name.
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Fatalf("Expected 3 report lines, got %d:\n%s", len(lines), output)
		}
		if !strings.HasPrefix(lines[0], "Alex:") || !strings.HasPrefix(lines[1], "Jordan Lee:") || !strings.HasPrefix(lines[2], "New Year's Day:") {
			t.Errorf("Report lines out of order:\n%s", output)
		}
	})

	t.Run("filters to the given date", func(t *testing.T) {
		output := executeCommandText(t, "preview", "--file", tmpFile, "--date", "2024-01-08")

		if !strings.Contains(output, "Alex: 2024-01-05 to 2024-01-09 (sick, vacation)") {
			t.Errorf("Report missing current range for Alex, got:\n%s", output)
		}
		if strings.Contains(output, "Jordan Lee") {
			t.Errorf("Report should not include future leave, got:\n%s", output)
		}
		if strings.Contains(output, "New Year's Day") {
			t.Errorf("Report should not include past holidays, got:\n%s", output)
		}
	})

	t.Run("reports nobody out for an uncovered date", func(t *testing.T) {
		output := executeCommandText(t, "preview", "--file", tmpFile, "--date", "2024-01-10")

		if strings.TrimSpace(output) != "Nobody is on leave today" {
			t.Errorf("Expected nobody-out line, got:\n%s", output)
		}
	})
}
