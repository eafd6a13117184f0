// Package variants embeds the built-in game definitions
package variants

import "embed"

// FS holds every built-in variant as <name>.json
//
//go:embed *.json
var FS embed.FS
