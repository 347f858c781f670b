package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name string
		in   Candidate
		want Result
	}{
		{
			name: "allowed mime type",
			in:   Candidate{Name: "notes", Type: "text/plain", Size: 10},
			want: Result{Valid: true},
		},
		{
			name: "allowed extension with unknown type",
			in:   Candidate{Name: "Report.PDF", Type: "application/octet-stream", Size: 10},
			want: Result{Valid: true},
		},
		{
			name: "neither type nor extension",
			in:   Candidate{Name: "image.png", Type: "image/png", Size: 10},
			want: Result{Valid: false, Reason: ReasonInvalidType},
		},
		{
			name: "exactly at ceiling",
			in:   Candidate{Name: "big.txt", Type: "text/plain", Size: MaxFileSizeBytes},
			want: Result{Valid: true},
		},
		{
			name: "one byte over ceiling",
			in:   Candidate{Name: "big.txt", Type: "text/plain", Size: MaxFileSizeBytes + 1},
			want: Result{Valid: false, Reason: ReasonTooLarge},
		},
		{
			name: "type checked before size",
			in:   Candidate{Name: "huge.exe", Type: "application/x-msdownload", Size: MaxFileSizeBytes * 3},
			want: Result{Valid: false, Reason: ReasonInvalidType},
		},
		{
			name: "empty file is valid",
			in:   Candidate{Name: "empty.md", Size: 0},
			want: Result{Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateFile(tt.in))
		})
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(Candidate{Name: "a.csv", Size: 1}))

	err := Check(Candidate{Name: "a.zip", Type: "application/zip", Size: 1})
	var vErr *Error
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, ReasonInvalidType, vErr.Reason)
	assert.Equal(t, "a.zip", vErr.File)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestFormatTypeError(t *testing.T) {
	assert.Equal(t,
		"Invalid file type: a.png. Only documents (.TXT, .PDF, .DOC, .DOCX, .RTF, .ODT, .MD, .CSV) are allowed.",
		FormatTypeError([]string{"a.png"}))

	msg := FormatTypeError([]string{"a.png", "b.gif", "c.exe", "d.zip"})
	assert.Contains(t, msg, "Invalid file type: a.png, b.gif and 2 more.")
	assert.NotContains(t, msg, "c.exe")
}

func TestFormatSizeError(t *testing.T) {
	files := []Candidate{
		{Name: "one.pdf", Size: 12_000_000},
		{Name: "two.pdf", Size: 11_000_000},
		{Name: "three.pdf", Size: 20_000_000},
	}

	msg := FormatSizeError(files)
	assert.Equal(t, "File too large: one.pdf (12 MB), two.pdf (11 MB) and 1 more. Maximum size is 10MB.", msg)

	assert.Equal(t, "File too large: one.pdf (12 MB). Maximum size is 10MB.", FormatSizeError(files[:1]))
}
