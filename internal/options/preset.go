package options

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in preset names, ordered from least to most detail.
const (
	// PresetNone disables every gated field group.
	PresetNone = "none"
	// PresetErrorsOnly shows only build errors.
	PresetErrorsOnly = "errors-only"
	// PresetMinimal shows artifacts and errors.
	PresetMinimal = "minimal"
	// PresetNormal is the default terminal view: artifacts, bundle
	// groups, deployment groups, and problems.
	PresetNormal = "normal"
	// PresetVerbose enables every field group including per-unit graph
	// detail and child sessions.
	PresetVerbose = "verbose"
)

// Preset returns a fresh option set for a built-in preset name.
// Callers may mutate the returned set freely.
func Preset(name string) (Options, error) {
	switch name {
	case PresetNone:
		return Options{}, nil
	case PresetErrorsOnly:
		return Options{
			"errors": true,
		}, nil
	case PresetMinimal:
		return Options{
			"assets": true,
			"errors": true,
		}, nil
	case PresetNormal:
		return Options{
			"hash":        true,
			"version":     true,
			"timings":     true,
			"builtAt":     true,
			"assets":      true,
			"chunks":      true,
			"entrypoints": true,
			"errors":      true,
			"warnings":    true,
		}, nil
	case PresetVerbose:
		return Options{
			"hash":            true,
			"version":         true,
			"timings":         true,
			"builtAt":         true,
			"assets":          true,
			"chunks":          true,
			"chunkModules":    true,
			"chunkOrigins":    true,
			"modules":         true,
			"reasons":         true,
			"depth":           true,
			"issuerPath":      true,
			"usedExports":     true,
			"providedExports": true,
			"entrypoints":     true,
			"errors":          true,
			"warnings":        true,
			"children":        true,
		}, nil
	default:
		return nil, ErrUnknownPreset
	}
}

// PresetFile is the structure of a YAML preset file. It maps preset names
// to option sets, letting users define project-specific report profiles
// next to the built-ins.
type PresetFile struct {
	// Presets maps preset names to their option sets.
	Presets map[string]Options `yaml:"presets"`
}

// LoadPresetFile loads preset definitions from a YAML file.
// If the file does not exist, it returns ErrPresetFileNotFound so callers
// can distinguish a missing optional file from a malformed one.
func LoadPresetFile(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided preset path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPresetFileNotFound
		}
		return nil, err
	}

	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	if pf.Presets == nil {
		pf.Presets = make(map[string]Options)
	}
	return &pf, nil
}

// Resolve returns the named preset, consulting the file definitions first
// and the built-ins second. File definitions may therefore shadow built-in
// names. A nil receiver resolves built-ins only.
func (pf *PresetFile) Resolve(name string) (Options, error) {
	if pf != nil {
		if opts, ok := pf.Presets[name]; ok {
			return normalize(opts), nil
		}
	}
	return Preset(name)
}

// normalize rewrites nested YAML mappings into Options values so that
// the children option normalization sees a uniform shape.
func normalize(o Options) Options {
	out := make(Options, len(o))
	for k, v := range o {
		if nested, ok := fromAny(v); ok && k == "children" {
			out[k] = normalize(nested)
			continue
		}
		out[k] = v
	}
	return out
}
