package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diogo/geminichat/internal/models"
)

// ExportFormat represents the format for printing a conversation
type ExportFormat string

const (
	ExportFormatText     ExportFormat = "text"
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat accepts text, markdown (md) or json
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return ExportFormatText, nil
	case "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown history format %q (use text, markdown or json)", s)
	}
}

// Export renders messages in the given format
func Export(messages []models.Message, format ExportFormat) (string, error) {
	switch format {
	case ExportFormatText, "":
		return Text(messages), nil
	case ExportFormatMarkdown:
		return Markdown(messages), nil
	case ExportFormatJSON:
		data, err := JSON(messages)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown history format %q", format)
	}
}

// Markdown renders messages as a markdown document with one section per message
func Markdown(messages []models.Message) string {
	if len(messages) == 0 {
		return "_" + Placeholder + "_\n"
	}

	var sb strings.Builder
	for i, msg := range messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Sender.Label())
		sb.WriteString("\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}
	return sb.String()
}

type exportMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// JSON renders messages as an indented array of {sender, text} objects
func JSON(messages []models.Message) ([]byte, error) {
	out := make([]exportMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, exportMessage{Sender: msg.Sender.String(), Text: msg.Text})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return data, nil
}
