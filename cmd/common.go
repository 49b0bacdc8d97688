package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// AnnotationNoService marks commands that run without loading the projects file.
const AnnotationNoService = "launcher/no-service"

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// marker is the list prefix shown in front of an option label.
func marker(t models.OptionType) string {
	if t == models.OptionTypeGroup {
		return "📁"
	}
	return "▶️"
}
