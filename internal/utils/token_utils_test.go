package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "staff-ledger")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "staff-ledger")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret", "")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.Error(t, err)

	expired, err := GenerateJWT("user-1", "secret", -time.Minute, "")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret", "")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.00", FormatAmount(d("1500")))
	assert.Equal(t, "12.35", FormatAmount(d("12.345")))
	assert.Equal(t, "QAR -0.50", FormatWithCurrency(d("-0.5")))
	assert.Equal(t, "12", FormatWithPrecision(d("12.3456"), 0))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
