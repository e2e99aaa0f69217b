package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var fgNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"purple":  color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"grey":    color.FgHiBlack,
}

var bgNames = map[string]color.Attribute{
	"black":   color.BgBlack,
	"red":     color.BgRed,
	"green":   color.BgGreen,
	"yellow":  color.BgYellow,
	"blue":    color.BgBlue,
	"magenta": color.BgMagenta,
	"purple":  color.BgMagenta,
	"cyan":    color.BgCyan,
	"white":   color.BgWhite,
	"gray":    color.BgHiBlack,
	"grey":    color.BgHiBlack,
}

// ParseInlineTheme parses an inline-code color spec: a foreground
// color name or #hex value, optionally followed by "on <background>".
func ParseInlineTheme(spec string) (*color.Color, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" {
		return color.New(color.FgBlue), nil
	}

	fgSpec := spec
	bgSpec := ""
	if i := strings.Index(spec, " on "); i >= 0 {
		fgSpec = strings.TrimSpace(spec[:i])
		bgSpec = strings.TrimSpace(spec[i+4:])
	}

	c, err := foreground(fgSpec)
	if err != nil {
		return nil, err
	}
	if bgSpec != "" {
		if err := addBackground(c, bgSpec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func foreground(spec string) (*color.Color, error) {
	if r, g, b, ok := parseHex(spec); ok {
		return color.RGB(r, g, b), nil
	}
	if attr, ok := fgNames[spec]; ok {
		return color.New(attr), nil
	}
	return nil, fmt.Errorf("unknown color %q", spec)
}

func addBackground(c *color.Color, spec string) error {
	if r, g, b, ok := parseHex(spec); ok {
		c.AddBgRGB(r, g, b)
		return nil
	}
	if attr, ok := bgNames[spec]; ok {
		c.Add(attr)
		return nil
	}
	return fmt.Errorf("unknown background color %q", spec)
}

func parseHex(spec string) (r, g, b int, ok bool) {
	if !strings.HasPrefix(spec, "#") || len(spec) != 7 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(spec[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
