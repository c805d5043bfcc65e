package certificates

import (
	"bytes"
	"fmt"
	"time"

	"certificate-hub/certificate-hub-backend/internal/assets"
)

// Certificates carry a pt-BR formatted issue date (dd/mm/yyyy).
const dateLayout = "02/01/2006"

// formatIssueDate formats t the way Intl.DateTimeFormat("pt-br") does.
func formatIssueDate(t time.Time) string {
	return t.Format(dateLayout)
}

// renderHTML executes the bundled certificate template with the given
// context. Rendering is pure: the same context always yields the same
// document.
func renderHTML(rc RenderContext) (string, error) {
	var buf bytes.Buffer
	if err := assets.Certificate.Execute(&buf, rc); err != nil {
		return "", fmt.Errorf("executing certificate template: %w", err)
	}
	return buf.String(), nil
}
