// Package web holds the browser assets compiled into both binaries.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var Static embed.FS

// StaticFS returns the asset tree served under /static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(Static, "static")
}
