// Package config loads framescope settings from TOML.
//
// A configuration file is optional. [Load] starts from [Default] and
// overlays whatever keys the file sets, so a file only needs the settings it
// changes:
//
//	[inspector]
//	tie_break = "sibling"
//
//	[style]
//	highlight_color = "#ff3b30"
//	border_color = "#007aff"
//
//	[terminal]
//	cell_width = 8
//	cell_height = 16
//
//	[server]
//	addr = ":7070"
//
//	[redis]
//	addr = "localhost:6379"
//	channel = "framescope:passes"
//
// Every loaded configuration is validated; problems are reported as
// INVALID_CONFIG errors from [github.com/matzehuels/framescope/pkg/errors].
package config
