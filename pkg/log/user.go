package log

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about fix progress
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 FileChangeType represents the outcome for a single file
type FileChangeType int

const (
	FileFixed FileChangeType = iota
	FileUnchanged
	FileSkipped
	FileError
)

// 🖼️ FileChange represents one file's outcome for user display
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileChange logs a file outcome with appropriate prefix and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	relPath := filepath.Base(change.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileFixed:
		prefix = "🔧"
		action = "Fixed"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case FileUnchanged:
		prefix = "⏭️"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case FileSkipped:
		prefix = "⚠️"
		action = "Skipped"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case FileError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📝 LogValidation logs the outcome of a validation step
func (u *UserLogger) LogValidation(ok bool, msg string, err error) {
	if ok {
		pterm.Success.Println(msg)
		u.log.Info().Msg(msg)
		return
	}
	pterm.Error.Println(msg)
	if err != nil {
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(msg)
	} else {
		u.log.Error().Msg(msg)
	}
}
