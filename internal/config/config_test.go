package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoPathIsDefault(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileIsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesKeepOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
database: /var/lib/shop.db
messaging_base_url: https://chat.example.com
placeholder:
  name: My Shop
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/shop.db", cfg.Database)
	assert.Equal(t, "https://chat.example.com", cfg.MessagingBaseURL)
	assert.Equal(t, "My Shop", cfg.Placeholder.Name)
	assert.Equal(t, Default().Placeholder.WhatsApp, cfg.Placeholder.WhatsApp)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, 10, cfg.MinContactLength)
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "currency: USD\ncurrency_symbol: US$\nlocale: en-US\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)

	f, err := cfg.Formatter()
	require.NoError(t, err)
	assert.Equal(t, "US$ 1.50", f.Format(150))
}

func TestLoad_EmptyFileIsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "databse: x.db\n", "failed to parse YAML"},
		{"bad currency", "currency: XYZW\n", "parse currency"},
		{"bad locale", "locale: \"!!\"\n", "parse locale"},
		{"relative base url", "messaging_base_url: wa.me\n", "absolute URL"},
		{"zero min contact", "min_contact_length: 0\n", "min_contact_length"},
		{"empty database", "database: \"\"\n", "database is required"},
		{"empty placeholder", "placeholder:\n  whatsapp: \"\"\n", "placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
