package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{"50", 5000, false},
		{"50.00", 5000, false},
		{"50.5", 5050, false},
		{"0.99", 99, false},
		{"-12.34", -1234, false},
		{".50", 50, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.234", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "50.00", Cents(5000).String())
	assert.Equal(t, "150.00", Cents(15000).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-3.21", Cents(-321).String())
}

func TestCentsMul(t *testing.T) {
	rate := Cents(5000) // 50.00 per day
	assert.Equal(t, Cents(15000), rate.Mul(3))
	assert.Equal(t, "150.00", rate.Mul(3).String())
	assert.Equal(t, rate, rate.Mul(1))
}

func TestCentsJSON(t *testing.T) {
	raw, err := json.Marshal(Cents(15000))
	require.NoError(t, err)
	assert.Equal(t, `"150.00"`, string(raw))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte(`"49.99"`), &c))
	assert.Equal(t, Cents(4999), c)

	require.NoError(t, json.Unmarshal([]byte(`75`), &c))
	assert.Equal(t, Cents(7500), c)
}
