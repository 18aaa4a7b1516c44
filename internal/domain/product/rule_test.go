package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/core/apperror"
)

func TestNewRuleNotifier_Compiles(t *testing.T) {
	n, err := NewRuleNotifier("near_threshold", "stock <= min_stock * 2 && stock > 0")
	require.NoError(t, err)
	assert.Equal(t, "near_threshold", n.Name())
}

func TestNewRuleNotifier_RejectsBadExpression(t *testing.T) {
	_, err := NewRuleNotifier("broken", "stock <=")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestNewRuleNotifier_RejectsNonBool(t *testing.T) {
	_, err := NewRuleNotifier("numeric", "stock + min_stock")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestRuleNotifier_Update(t *testing.T) {
	n, err := NewRuleNotifier("pricey_low", `price > 10.0 && stock < min_stock`)
	require.NoError(t, err)

	p := New("Coffee 500g", "", decimal.NewFromFloat(12.90))
	p.Stock = 2
	p.MinStock = 10

	// Fires without error; the alert itself goes to the log and metrics
	assert.NoError(t, n.Update(context.Background(), p))

	p.Stock = 50
	assert.NoError(t, n.Update(context.Background(), p))
}

func TestRuleNotifier_UsesProductName(t *testing.T) {
	n, err := NewRuleNotifier("named", `name == "Rice 5kg" && stock == 0`)
	require.NoError(t, err)

	p := New("Rice 5kg", "", decimal.NewFromFloat(22.00))
	assert.NoError(t, n.Update(context.Background(), p))
}
