package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, Theme("").Toggle())
	assert.False(t, Theme("sepia").Valid())
}

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Severity("fatal").Valid())
}

func TestDocumentSummarize(t *testing.T) {
	now := time.Now().UTC()
	d := Document{ID: "1", Name: "a.txt", Size: 3, Type: "text/plain", UploadDate: now, Content: "abc"}

	s := d.Summarize()
	assert.Equal(t, "1", s.ID)
	assert.Equal(t, now, s.UploadDate)
	assert.True(t, s.HasContent)

	d.Content = ""
	assert.False(t, d.Summarize().HasContent)
}
