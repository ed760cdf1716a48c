package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"compass.qibla.app/internal/app"
	"compass.qibla.app/internal/bearing"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// WebUI serves development-only debug pages
type WebUI struct {
	*app.Application
}

type debugData struct {
	Title string
	Pre   string
}

type compassRow struct {
	Angle     float64
	Label     string
	Localized map[string]string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func compassTable() []compassRow {
	rows := make([]compassRow, 0, 8)
	for angle := 0.0; angle < 360; angle += 45 {
		row := compassRow{
			Angle:     angle,
			Label:     bearing.CompassLabel(angle),
			Localized: make(map[string]string, len(bearing.SupportedLanguages)),
		}
		for _, tag := range bearing.SupportedLanguages {
			row.Localized[tag.String()] = bearing.LocalizedCompassLabel(angle, tag)
		}
		rows = append(rows, row)
	}
	return rows
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		cfg := webUI.Config
		cfg.ApiKeys = nil
		cfg.ExemptKeys = nil
		data = cfg
		title = "Configuration"
	case "metrics":
		names, err := webUI.Metrics.Gather()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = names
		title = "Registered Metrics"
	case "compass":
		data = compassTable()
		title = "Compass Labels"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, metrics, compass.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
