package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Languages map", func(t *testing.T) {
		original := config.NewConfig()
		clone := original.Clone()

		clone.Languages[".weird"] = "arithmetic"
		assert.NotContains(t, original.Languages, ".weird")
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{Ignore: []string{"vendor/**"}}
		clone := original.Clone()

		clone.Ignore[0] = "changed"
		assert.Equal(t, "vendor/**", original.Ignore[0])
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Jobs = 7
		original.Write = true
		original.Format = config.FormatJSON

		clone := original.Clone()
		assert.Equal(t, 7, clone.Jobs)
		assert.True(t, clone.Write)
		assert.Equal(t, config.FormatJSON, clone.Format)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.DefaultLanguage = "arithmetic"
	original.Ignore = []string{"testdata/**"}
	original.Backups.Mode = "xdg"

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.Languages, parsed.Languages)
	assert.Equal(t, original.DefaultLanguage, parsed.DefaultLanguage)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.Equal(t, original.Backups, parsed.Backups)
}

func TestFromYAMLInitializesLanguages(t *testing.T) {
	parsed, err := config.FromYAML([]byte("default_language: json\n"))
	require.NoError(t, err)
	require.NotNil(t, parsed.Languages)
	assert.Equal(t, "json", parsed.DefaultLanguage)
}

func TestToYAMLWithHeader(t *testing.T) {
	c := config.NewConfig()
	data, err := c.ToYAMLWithHeader("# cedar configuration")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# cedar configuration\n")
	assert.Contains(t, string(data), "languages:")
}
