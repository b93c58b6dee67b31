package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantCents int64
	}{
		{
			name:      "whole_amount",
			amount:    50.00,
			wantCents: 5000,
		},
		{
			name:      "fractional_amount",
			amount:    199.99,
			wantCents: 19999,
		},
		{
			name:      "rounds_to_nearest_cent",
			amount:    0.1 + 0.2,
			wantCents: 30,
		},
		{
			name:      "zero",
			amount:    0,
			wantCents: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCents, MoneyFromFloat(tt.amount).Cents())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(5000)
	b := NewMoney(1500)

	assert.Equal(t, NewMoney(6500), a.Add(b))
	assert.Equal(t, NewMoney(3500), a.Subtract(b))
	assert.Equal(t, NewMoney(4500), b.Multiply(3))

	assert.True(t, a.IsGreaterThan(b))
	assert.False(t, b.IsGreaterThan(a))
	assert.True(t, a.IsGreaterThanZero())
	assert.False(t, ZeroMoney.IsGreaterThanZero())
}

func TestMoneyEquality(t *testing.T) {
	// exact comparison is what order and ledger checks rely on
	assert.Equal(t, MoneyFromFloat(200.00), NewMoney(20000))
	assert.NotEqual(t, MoneyFromFloat(200.00), MoneyFromFloat(200.01))
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{
			name:  "whole_amount",
			money: NewMoney(25000),
			want:  "250.00",
		},
		{
			name:  "single_cent_padded",
			money: NewMoney(5005),
			want:  "50.05",
		},
		{
			name:  "negative_amount",
			money: NewMoney(-150),
			want:  "-1.50",
		},
		{
			name:  "zero",
			money: ZeroMoney,
			want:  "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.money.String())
		})
	}
}
