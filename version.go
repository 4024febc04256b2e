package dropzone

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release version of dropzone.
var Version = strings.TrimSpace(rawVersion)
