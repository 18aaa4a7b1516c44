package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/core/apperror"
)

func TestCreate_Regular(t *testing.T) {
	p, err := Create(CreateInput{
		Name:     "Rice 5kg",
		Price:    decimal.NewFromFloat(22.00),
		Stock:    30,
		MinStock: 5,
		Type:     TypeRegular,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, p.Stock)
	assert.Equal(t, 5, p.MinStock)
	assert.NotZero(t, p.ID)
	assert.Equal(t, 1, p.Version)
}

func TestCreate_PerishableDefaultsMinStock(t *testing.T) {
	p, err := Create(CreateInput{
		Name:  "Orange Juice 1L",
		Price: decimal.NewFromFloat(6.50),
		Stock: 20,
		Type:  TypePerishable,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultPerishableMinStock, p.MinStock)
}

func TestCreate_PerishableKeepsExplicitMinStock(t *testing.T) {
	p, err := Create(CreateInput{
		Name:     "Milk 1L",
		Price:    decimal.NewFromFloat(4.20),
		Stock:    20,
		MinStock: 8,
		Type:     TypePerishable,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, p.MinStock)
}

func TestCreate_DigitalForcesStock(t *testing.T) {
	p, err := Create(CreateInput{
		Name:     "E-book",
		Price:    decimal.NewFromFloat(9.90),
		Stock:    3,
		MinStock: 2,
		Type:     TypeDigital,
	})
	require.NoError(t, err)

	assert.Equal(t, DigitalStock, p.Stock)
	assert.Equal(t, 0, p.MinStock)
	assert.Equal(t, StatusNormal, p.Status())
}

func TestCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{Price: decimal.NewFromInt(1)}},
		{"zero price", CreateInput{Name: "X", Price: decimal.Zero}},
		{"negative price", CreateInput{Name: "X", Price: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(tt.in)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeInvalidProductData))
		})
	}
}

func TestCreate_RegistersDefaultNotifiers(t *testing.T) {
	p, err := Create(CreateInput{
		Name:  "Coffee 500g",
		Price: decimal.NewFromFloat(12.90),
	})
	require.NoError(t, err)

	assert.Len(t, p.Observers(), 2)
}
