package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "9.90", FormatAmount(decimal.RequireFromString("9.9")))
	require.Equal(t, "0.00", FormatAmount(decimal.Zero))
	require.Equal(t, "-1.50", FormatAmount(decimal.RequireFromString("-1.5")))
}

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2", FormatQuantity(decimal.RequireFromString("2.000")))
	require.Equal(t, "1.5", FormatQuantity(decimal.RequireFromString("1.50")))
}

func TestTrimDTO(t *testing.T) {
	t.Parallel()

	s := " padded "
	dto := struct {
		Name  string
		Email *string
		Count int
	}{Name: "  x  ", Email: &s, Count: 3}

	TrimDTO(&dto)

	require.Equal(t, "x", dto.Name)
	require.Equal(t, "padded", *dto.Email)
	require.Equal(t, 3, dto.Count)
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	t.Parallel()

	name := "Acme"
	dto := struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Skip  *string `json:"-"`
	}{Name: &name, Skip: &name}

	updates := UpdatesFromPtrDTO(&dto)

	require.Equal(t, map[string]any{"name": "Acme"}, updates)
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5, ParseIntDefault("5", 1))
	require.Equal(t, 1, ParseIntDefault("nope", 1))
	require.Equal(t, 1, ParseIntDefault("-3", 1))
	require.Equal(t, 1, ParseIntDefault("", 1))
}
