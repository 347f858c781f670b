package validation

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatTypeError builds the notification text for a batch of files with unsupported types.
// At most two names are listed.
func FormatTypeError(names []string) string {
	list := strings.Join(names, ", ")
	if len(names) > 2 {
		list = fmt.Sprintf("%s and %d more", strings.Join(names[:2], ", "), len(names)-2)
	}
	exts := strings.ToUpper(strings.Join(AllowedExtensions, ", "))
	return fmt.Sprintf("Invalid file type: %s. Only documents (%s) are allowed.", list, exts)
}

// FormatSizeError builds the notification text for a batch of oversized files.
func FormatSizeError(files []Candidate) string {
	shown := files
	if len(shown) > 2 {
		shown = shown[:2]
	}
	details := make([]string, 0, len(shown))
	for _, f := range shown {
		details = append(details, fmt.Sprintf("%s (%s)", f.Name, FormatSize(f.Size)))
	}
	more := ""
	if len(files) > 2 {
		more = fmt.Sprintf(" and %d more", len(files)-2)
	}
	return fmt.Sprintf("File too large: %s%s. Maximum size is %dMB.", strings.Join(details, ", "), more, MaxFileSizeMB)
}

// FormatSize renders a byte count for display, e.g. "12 MB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
