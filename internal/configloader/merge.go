package configloader

import "github.com/yaklabco/msgmark/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Units != "" {
		result.Units = override.Units
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.NormalizeLanguage != nil {
		result.NormalizeLanguage = config.Bool(*override.NormalizeLanguage)
	}
	if override.InferLanguage != nil {
		result.InferLanguage = config.Bool(*override.InferLanguage)
	}

	// Plain booleans have no unset state: only true overrides.
	if override.Compact {
		result.Compact = true
	}
	if override.Write {
		result.Write = true
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
