package configloader

import "github.com/cedartree/cedar/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.DefaultLanguage != "" {
		result.DefaultLanguage = override.DefaultLanguage
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}

	// Booleans: false is the zero value, so a config file cannot unset a
	// flag the CLI turned on; only "true" overrides.
	if override.Write {
		result.Write = override.Write
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Maps: deep merge
	result.Languages = mergeLanguages(base.Languages, override.Languages)

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeLanguages merges extension-to-language maps, with override's entries
// taking precedence.
func mergeLanguages(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	for ext, lang := range base {
		result[ext] = lang
	}
	for ext, lang := range override {
		result[ext] = lang
	}
	return result
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
