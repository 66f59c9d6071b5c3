package inspector

import "github.com/matzehuels/framescope/pkg/config"

// Style controls overlay colours and border widths. Colours are hex strings.
type Style struct {
	Highlight  string  // selected and focused borders, label backgrounds, lines
	Border     string  // every other node
	LabelText  string  // label foreground
	Emphasized float64 // selected, focused and connected borders
	Regular    float64 // other borders and measurement lines
}

// DefaultStyle returns red highlights over blue borders.
func DefaultStyle() Style {
	return StyleFromConfig(config.Default().Style)
}

// StyleFromConfig converts the [style] configuration section.
func StyleFromConfig(s config.Style) Style {
	return Style{
		Highlight:  s.HighlightColor,
		Border:     s.BorderColor,
		LabelText:  s.LabelColor,
		Emphasized: s.Emphasized,
		Regular:    s.Regular,
	}
}
