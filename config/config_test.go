package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Make sure nothing from the host environment leaks in
	t.Setenv("PORT", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("TABLE_COUNT", "")
	t.Setenv("STRICT_TRANSITIONS", "")
	t.Setenv("PUBLIC_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 12, cfg.TableCount)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, "./public", cfg.PublicDir)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GO_ENV", "test")
	t.Setenv("TABLE_COUNT", "20")
	t.Setenv("STRICT_TRANSITIONS", "true")
	t.Setenv("PUBLIC_DIR", "/srv/static")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 20, cfg.TableCount)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, "/srv/static", cfg.PublicDir)
	assert.True(t, cfg.IsTest())
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TABLE_COUNT", "a dozen")
	t.Setenv("STRICT_TRANSITIONS", "definitely")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.TableCount)
	assert.False(t, cfg.StrictTransitions)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{Port: "3000", TableCount: 12},
			wantErr: false,
		},
		{
			name:    "missing port",
			config:  Config{Port: "", TableCount: 12},
			wantErr: true,
		},
		{
			name:    "zero table count",
			config:  Config{Port: "3000", TableCount: 0},
			wantErr: true,
		},
		{
			name:    "negative table count",
			config:  Config{Port: "3000", TableCount: -3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
