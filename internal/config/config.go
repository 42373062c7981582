package config

import (
	"embed"
	"fmt"
	"time"

	"github.com/idursun/asciidraw/internal/validation"
)

//go:embed default/*.toml
var configFS embed.FS

// Current is the configuration the editor runs with. It starts as the
// embedded defaults and is replaced by Init.
var Current = loadDefaultConfig()

type Config struct {
	UI       UIConfig        `toml:"ui" json:"ui"`
	Canvas   CanvasConfig    `toml:"canvas" json:"canvas"`
	Export   ExportConfig    `toml:"export" json:"export"`
	Log      LogConfig       `toml:"log" json:"log"`
	Bindings []BindingConfig `toml:"bindings" json:"-"`
}

type UIConfig struct {
	Colors                     map[string]Color `toml:"colors" json:"colors"`
	FlashMessageDisplaySeconds int              `toml:"flash_message_display_seconds" json:"flash_message_display_seconds" validate:"gte=0"`
	ShowPreview                bool             `toml:"show_preview" json:"show_preview"`
	PreviewWidthPercentage     float64          `toml:"preview_width_percentage" json:"preview_width_percentage" validate:"gte=10,lte=95"`
}

// CanvasConfig holds the pixel size of one grid cell, used when mapping
// to and from image coordinates, and the pan step in cells.
type CanvasConfig struct {
	CellWidth  int `toml:"cell_width" json:"cell_width" validate:"gte=1"`
	CellHeight int `toml:"cell_height" json:"cell_height" validate:"gte=1"`
	PanStep    int `toml:"pan_step" json:"pan_step" validate:"gte=1"`
}

type ExportConfig struct {
	Directory         string `toml:"directory" json:"directory"`
	TrimTrailingSpace bool   `toml:"trim_trailing_space" json:"trim_trailing_space"`
	PNGFontSize       int    `toml:"png_font_size" json:"png_font_size" validate:"gte=4,lte=96"`
	PNGPadding        int    `toml:"png_padding" json:"png_padding" validate:"gte=0"`
}

type LogConfig struct {
	File   string `toml:"file" json:"file"`
	Level  string `toml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" json:"format" validate:"oneof=text json"`
}

// Color is either a bare colour string or a table of style attributes.
// Unset attributes stay nil so they don't override inherited styles.
type Color struct {
	Fg            string `toml:"fg" json:"fg,omitempty"`
	Bg            string `toml:"bg" json:"bg,omitempty"`
	Bold          *bool  `toml:"bold" json:"bold,omitempty"`
	Italic        *bool  `toml:"italic" json:"italic,omitempty"`
	Underline     *bool  `toml:"underline" json:"underline,omitempty"`
	Strikethrough *bool  `toml:"strikethrough" json:"strikethrough,omitempty"`
	Reverse       *bool  `toml:"reverse" json:"reverse,omitempty"`
}

func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		var out Color
		for key, raw := range v {
			switch key {
			case "fg", "bg":
				s, ok := raw.(string)
				if !ok {
					return fmt.Errorf("color %s: expected string, got %T", key, raw)
				}
				if key == "fg" {
					out.Fg = s
				} else {
					out.Bg = s
				}
			case "bold", "italic", "underline", "strikethrough", "reverse":
				b, ok := raw.(bool)
				if !ok {
					return fmt.Errorf("color %s: expected bool, got %T", key, raw)
				}
				*out.attr(key) = &b
			default:
				return fmt.Errorf("color: unknown attribute %q", key)
			}
		}
		*c = out
		return nil
	default:
		return fmt.Errorf("color: expected string or table, got %T", value)
	}
}

func (c *Color) attr(name string) **bool {
	switch name {
	case "bold":
		return &c.Bold
	case "italic":
		return &c.Italic
	case "underline":
		return &c.Underline
	case "strikethrough":
		return &c.Strikethrough
	default:
		return &c.Reverse
	}
}

// Validate checks value ranges after all layers have been merged.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	return c.ValidateBindings()
}

func GetExpiringFlashMessageTimeout(c *Config) time.Duration {
	if c == nil || c.UI.FlashMessageDisplaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.UI.FlashMessageDisplaySeconds) * time.Second
}
