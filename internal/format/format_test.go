package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	assert.Equal(t, "$ 1,234.50", USD(1234.5))
	assert.Equal(t, "$ 0.27", USD(0.27))
	assert.Equal(t, "$ 10.82", USD(10.82))
}

func TestVES(t *testing.T) {
	// Venezuelan convention: dot thousands separator, comma decimals.
	assert.Equal(t, "Bs. 12.345,50", VES(12345.5))
	assert.Equal(t, "Bs. 365,00", VES(365))
}

func TestDecimalFormatters(t *testing.T) {
	assert.Equal(t, "$ 10.82", DecimalUSD(decimal.RequireFromString("10.8219178")))
	assert.Equal(t, "Bs. 395,00", DecimalVES(decimal.RequireFromString("395")))
	assert.Equal(t, "36,50", Rate(decimal.RequireFromString("36.50")))
}
