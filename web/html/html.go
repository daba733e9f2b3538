package html

import (
	"embed"
)

//go:embed index.html css
var HTML embed.FS
