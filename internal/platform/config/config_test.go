package config

import (
	"testing"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, 3*time.Second, cfg.QuoteTimeout)
	assert.Equal(t, time.Minute, cfg.QuoteStalenessThreshold)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.WithdrawalFeeOnTop)
	assert.Equal(t, domain.DefaultFeeSchedule(), cfg.Fees)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUOTE_TIMEOUT", "500ms")
	t.Setenv("QUOTE_STALENESS_THRESHOLD", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FEE_BUY_PERCENT", "0.02")
	t.Setenv("FEE_BUY_MIN", "1.00")
	t.Setenv("WITHDRAWAL_FEE_ON_TOP", "true")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.QuoteTimeout)
	assert.Equal(t, time.Minute, cfg.QuoteStalenessThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.WithdrawalFeeOnTop)

	buy := cfg.Fees[domain.OperationBuy]
	assert.True(t, decimal.RequireFromString("0.02").Equal(buy.Percentage))
	assert.True(t, decimal.RequireFromString("1.00").Equal(buy.Minimum))
	assert.True(t, decimal.RequireFromString("50.00").Equal(buy.Maximum))
}

func TestLoadRejectsBadFee(t *testing.T) {
	t.Setenv("FEE_SELL_MAX", "-1")
	_, err := load(viper.New())
	assert.Error(t, err)

	t.Setenv("FEE_SELL_MAX", "abc")
	_, err = load(viper.New())
	assert.Error(t, err)
}
