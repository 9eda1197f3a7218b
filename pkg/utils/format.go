package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"podbatch/internal/models"
	"time"

	"github.com/dustin/go-humanize"
)

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatClock renders whole seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatClock(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, (seconds/60)%60, seconds%60)
}

func PrintJSON(data interface{}) error {
	return FprintJSON(os.Stdout, data)
}

func FprintJSON(w io.Writer, data interface{}) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonOutput)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func PrintError(err error, command string) {
	FprintError(os.Stdout, err, command)
}

func FprintError(w io.Writer, err error, command string) {
	errorResp := models.ErrorResponse{
		Error:     err.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   command,
	}
	err = FprintJSON(w, errorResp)
	if err != nil {
		slog.Error("Failed to print error in JSON format", "error", err)
		fmt.Fprintln(w, "Error: ", errorResp)
		return
	}
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
