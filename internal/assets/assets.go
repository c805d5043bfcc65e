// Package assets bundles the static files shipped with the service: the
// certificate HTML template and the medal image stamped on every
// certificate. Both are embedded at build time and prepared once at
// process start; they are immutable and safe to share across requests.
package assets

import (
	_ "embed"
	"encoding/base64"
	"html/template"
)

//go:embed templates/certificate.html
var certificateHTML string

//go:embed templates/selo.png
var medalPNG []byte

// Certificate is the parsed certificate template. Substituted fields:
// Name, ID, Grade, Date and Medal.
var Certificate = template.Must(template.New("certificate").Parse(certificateHTML))

var medalDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(medalPNG))

// MedalDataURI returns the bundled medal image as a data URI suitable
// for an <img> src attribute. The value is identical for every request.
func MedalDataURI() template.URL {
	return medalDataURI
}
