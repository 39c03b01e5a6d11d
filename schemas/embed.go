// Package schemas holds the JSON Schema contracts for pipeline artifacts.
package schemas

import "embed"

// Files contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var Files embed.FS
