package scene

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a 24-bit 0xRRGGBB value, the form used by every preset.
type Color uint32

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) String() string { return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF) }

// ParseColor accepts "#RRGGBB", "0xRRGGBB" or a decimal integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	base := 0
	if strings.HasPrefix(s, "#") {
		s, base = s[1:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("color %#x out of range", v)
	}
	return Color(v), nil
}

func (c Color) MarshalYAML() (interface{}, error) { return c.String(), nil }

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseColor(node.Value)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
