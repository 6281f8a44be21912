package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/compiler/load"
)

func TestConfig_Check(t *testing.T) {
	inst := &load.Installation{}
	tests := []struct {
		name   string
		config *Config
		option string
	}{
		{"MissingInstallation", &Config{Builder: traceBuilder{}, Xgen: &Xgen{}, Xsdgen: &Xsdgen{}}, "Installation"},
		{"MissingBuilder", &Config{Installation: inst, Xgen: &Xgen{}, Xsdgen: &Xsdgen{}}, "Builder"},
		{"MissingCompiler", &Config{Installation: inst, Builder: traceBuilder{}, Xsdgen: &Xsdgen{}}, "SchemaCompilers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Check()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}

	t.Run("Complete", func(t *testing.T) {
		c := &Config{Installation: inst, Builder: traceBuilder{}, Xgen: &Xgen{}, Xsdgen: &Xsdgen{}}
		assert.NoError(t, c.Check())
	})
}

func TestNewGenerator(t *testing.T) {
	t.Run("requires an installation", func(t *testing.T) {
		_, err := NewGenerator(WithBuilder(traceBuilder{}))
		assert.True(t, IsConfigError(err))
	})

	t.Run("option error", func(t *testing.T) {
		_, err := NewGenerator(WithCompilerTimeout(0))
		assert.True(t, IsConfigError(err))
	})

	t.Run("valid", func(t *testing.T) {
		g, err := NewGenerator(WithInstallation(&load.Installation{}), WithBuilder(traceBuilder{}))
		require.NoError(t, err)
		assert.Equal(t, DefaultHeader, g.Config().Header)
	})
}
