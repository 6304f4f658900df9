package config

import "sort"

// Preset is a named figure size.
type Preset struct {
	Width       float64
	Height      float64
	GridColumns int
}

var Presets = map[string]*Preset{
	"small":  {Width: 5, Height: 4},
	"medium": {Width: DefaultWidth, Height: DefaultHeight},
	"large":  {Width: 12, Height: 9},
	"wide":   {Width: 14, Height: 5, GridColumns: 4},
	"square": {Width: 8, Height: 8},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
