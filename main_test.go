package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"faraid-engine/internal/config"
	"faraid-engine/internal/faraid"
)

func TestBuildEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Faraid.RaddPolicy = "fail-closed"

	eng, calculator, prices, err := buildEngine(cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	defer prices.Close()

	assert.NotNil(t, eng)
	assert.Equal(t, faraid.RaddFailClosed, calculator.Policy())
}

func TestBuildEngine_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"radd policy", func(c *config.Config) { c.Faraid.RaddPolicy = "fail-closd" }},
		{"gold price", func(c *config.Config) { c.PriceFeed.GoldPricePerGram = "seventy" }},
		{"silver price", func(c *config.Config) { c.PriceFeed.SilverPricePerGram = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			_, _, _, err := buildEngine(cfg, zap.NewNop(), nil)
			assert.Error(t, err)
		})
	}
}
