package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/Nixie-Tech-LLC/signage-console/internal/console"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"daysText":         console.DaysText,
	"contentTypeLabel": console.ContentTypeLabel,
	"contentIcon":      console.ContentIcon,
	"orientationLabel": console.OrientationLabel,
	"statusBadge":      console.StatusBadge,
	"statusActions":    console.StatusActions,
	"lastSeen":         console.LastSeenText,
	"itoa":             strconv.Itoa,
	"selected": func(a, b any) template.HTMLAttr {
		if fmt.Sprint(a) == fmt.Sprint(b) {
			return "selected"
		}
		return ""
	},
	"checked": func(on bool) template.HTMLAttr {
		if on {
			return "checked"
		}
		return ""
	},
	"mac": func(d model.Device) string {
		if d.MACAddress == nil {
			return ""
		}
		return *d.MACAddress
	},
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Static serves the embedded stylesheet and scripts.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
