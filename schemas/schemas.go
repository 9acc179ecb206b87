// Package schemas embeds the JSON schemas of every event this service publishes.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
