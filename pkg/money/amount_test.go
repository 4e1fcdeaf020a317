package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number", `250`, "250"},
		{"decimal number", `1250.75`, "1250.75"},
		{"quoted number", `"500"`, "500"},
		{"rupee symbol", `"₹1,250.00"`, "1250"},
		{"rs prefix", `"Rs. 500"`, "500"},
		{"rs without dot", `"Rs 99.5"`, "99.5"},
		{"inr prefix", `"INR 2000"`, "2000"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage", `"n/a"`, "0"},
		{"negative magnitude preserved", `-120`, "-120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.String())
		})
	}
}

func TestAmount_AbsentFieldDefaultsToZero(t *testing.T) {
	var rec struct {
		Amount Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rec))
	assert.True(t, rec.Amount.IsZero())
}

func TestAmount_Arithmetic(t *testing.T) {
	a := FromInt(300)
	b := FromInt(120)

	assert.Equal(t, "420", a.Add(b).String())
	assert.Equal(t, "180", a.Sub(b).String())
	assert.Equal(t, "180", b.Sub(a).Abs().String())
}

func TestAmount_MarshalJSON_RoundTrips(t *testing.T) {
	a := FromInt(1250)
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, a.Equal(back.Decimal))
}
