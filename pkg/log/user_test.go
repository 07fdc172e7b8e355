package log

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

// capturePterm redirects pterm output to a buffer for the duration of
// the test
func capturePterm(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	pterm.SetDefaultOutput(buf)
	// the prebuilt printers copied os.Stdout into their Writer field at
	// package init, so SetDefaultOutput alone does not redirect them
	printers := []*pterm.PrefixPrinter{&pterm.Success, &pterm.Debug, &pterm.Warning, &pterm.Error}
	saved := make([]io.Writer, len(printers))
	for i, p := range printers {
		saved[i] = p.Writer
		p.Writer = buf
	}
	pterm.DisableColor()
	pterm.EnableDebugMessages()
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		for i, p := range printers {
			p.Writer = saved[i]
		}
		pterm.EnableColor()
		pterm.DisableDebugMessages()
	})
	return buf
}

func TestUserLogger_LogFileChange(t *testing.T) {
	tests := []struct {
		name   string
		change FileChange
		want   []string
	}{
		{
			name: "fixed_file",
			change: FileChange{
				Type: FileFixed,
				Path: "src/api/routes/users.ts",
			},
			want: []string{"Fixed users.ts"},
		},
		{
			name: "unchanged_file",
			change: FileChange{
				Type: FileUnchanged,
				Path: "src/api/routes/health.ts",
			},
			want: []string{"Unchanged health.ts"},
		},
		{
			name: "skipped_file_with_description",
			change: FileChange{
				Type:        FileSkipped,
				Path:        "src/api/routes/broken.ts",
				Description: "permission denied",
			},
			want: []string{"Skipped broken.ts (permission denied)"},
		},
		{
			name: "errored_file",
			change: FileChange{
				Type:  FileError,
				Path:  "src/api/routes/bad.ts",
				Error: errors.New("disk full"),
			},
			want: []string{"Error bad.ts", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capturePterm(t)
			userLogger := NewUserLogger(context.Background())

			userLogger.LogFileChange(tt.change)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestUserLogger_LogValidation(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		msg  string
		err  error
		want []string
	}{
		{
			name: "validation_passed",
			ok:   true,
			msg:  "config is valid",
			want: []string{"config is valid"},
		},
		{
			name: "validation_failed_with_error",
			ok:   false,
			msg:  "Command failed",
			err:  errors.New("routes dir missing"),
			want: []string{"Command failed", "routes dir missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capturePterm(t)
			userLogger := NewUserLogger(context.Background())

			userLogger.LogValidation(tt.ok, tt.msg, tt.err)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
