package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
)

// GetTemplateFunctions returns the functions available to every page template
func GetTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(data), nil
		},
		"formatTime": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			if layout == "" {
				layout = time.RFC3339
			}
			return t.Format(layout)
		},
		"joinInts": common.JoinInts,
		"inc": func(i int) int {
			return i + 1
		},
		"minutesLabel": func(minutes int) string {
			if minutes == 1 {
				return "1 minute"
			}
			return fmt.Sprintf("%d minutes", minutes)
		},
	}
}
