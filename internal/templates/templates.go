// Package templates встраивает HTML-страницы панели в бинарник.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
