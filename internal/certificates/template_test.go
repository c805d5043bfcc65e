package certificates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certificate-hub/certificate-hub-backend/internal/assets"
)

func TestRenderHTML_SubstitutesFields(t *testing.T) {
	html, err := renderHTML(RenderContext{
		ID:    "u1",
		Name:  "Ana Silva",
		Grade: "A",
		Date:  "30/08/2026",
		Medal: assets.MedalDataURI(),
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Ana Silva")
	assert.Contains(t, html, "u1")
	assert.Contains(t, html, `class="grade">A<`)
	assert.Contains(t, html, "30/08/2026")
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	html, err := renderHTML(RenderContext{
		ID:    "u1",
		Name:  "<b>Ana</b>",
		Grade: "A",
		Date:  "30/08/2026",
		Medal: assets.MedalDataURI(),
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Ana</b>")
	assert.Contains(t, html, "&lt;b&gt;Ana&lt;/b&gt;")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	rc := RenderContext{ID: "u1", Name: "Ana Silva", Grade: "A", Date: "30/08/2026", Medal: assets.MedalDataURI()}

	first, err := renderHTML(rc)
	require.NoError(t, err)
	second, err := renderHTML(rc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormatIssueDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"single digit day and month", time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), "07/03/2026"},
		{"end of year", time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), "31/12/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatIssueDate(tt.in))
		})
	}
}
