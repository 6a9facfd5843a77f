// Package docs contiene el documento OpenAPI servida en /docs.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
