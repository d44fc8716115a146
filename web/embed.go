// Package web holds the static quiz UI served by the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Static returns the UI files rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// UploadPage returns the admin upload page.
func UploadPage() []byte {
	data, err := staticFS.ReadFile("static/upload.html")
	if err != nil {
		panic(err)
	}
	return data
}
