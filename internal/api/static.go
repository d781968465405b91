package api

import _ "embed"

// indexHTML is the single-page search UI served at /.
//
//go:embed web/index.html
var indexHTML []byte
