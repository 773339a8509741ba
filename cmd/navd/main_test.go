package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("NAVD_ADDR", ":9090")
	t.Setenv("NAVD_RATE", "5")

	cfg, err := loadConfig([]string{"-building", "campus.hcl", "-burst", "7"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "campus.hcl", cfg.BuildingFile)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 7, cfg.RateBurst)
	assert.Equal(t, "1楼大厅", cfg.DefaultStart)

	// flags win over the environment
	cfg, err = loadConfig([]string{"-neo4j-url", "neo4j://db:7687", "-addr", ":1"})
	require.NoError(t, err)
	assert.Equal(t, ":1", cfg.Addr)
	assert.Equal(t, "neo4j://db:7687", cfg.Neo4jURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(nil)
	assert.ErrorContains(t, err, "-building or -neo4j-url")

	_, err = loadConfig([]string{"-building", "x.hcl", "-burst", "0"})
	assert.ErrorContains(t, err, "burst")

	t.Setenv("NAVD_RATE", "fast")
	cfg, err := loadConfig([]string{"-building", "x.hcl"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.RateLimit)
}
