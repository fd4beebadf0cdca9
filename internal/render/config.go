package render

import (
	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
)

// OptionsFromConfig builds render options from the markdown section of the
// user configuration.
func OptionsFromConfig(md config.MarkdownConfig, appearance models.Appearance, width int) Options {
	return DefaultOptions().
		WithAppearance(appearance).
		WithWidth(width).
		WithEmoji(md.EnableEmoji).
		WithPreserveNewLines(md.PreserveNewLines).
		WithTableWrap(md.TableWrap)
}
