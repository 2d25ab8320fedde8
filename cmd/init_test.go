package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/Rana718/winegen/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfigLoadsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Warehouse.Provider = "mysql"
	data, err := renderConfig(cfg)
	require.NoError(t, err)

	v := viper.New()
	config.SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(data)))

	loaded, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestHandleEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, handleEnvFile(envTemplate))
	data, err := os.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, envTemplate, string(data))

	require.NoError(t, os.WriteFile(".env", []byte("WAREHOUSE_URL=mysql://x"), 0644))
	require.NoError(t, handleEnvFile(envTemplate))
	data, err = os.ReadFile(".env")
	require.NoError(t, err)
	assert.Contains(t, string(data), "WAREHOUSE_URL=mysql://x\n\n# Added by winegen\nWINEGEN_DB_PATH=winenot.db\n")
	assert.Equal(t, 1, bytes.Count(data, []byte("WAREHOUSE_URL=")))
}

func TestSecondsToDuration(t *testing.T) {
	d, err := secondsToDuration(0.25)
	require.NoError(t, err)
	assert.Equal(t, "250ms", d.String())

	_, err = secondsToDuration(-1)
	assert.Error(t, err)
}
