package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("+919876543210"))
	require.True(t, IsValidPhone("14155552671"))
	require.False(t, IsValidPhone(""))
	require.False(t, IsValidPhone("abc"))
	require.False(t, IsValidPhone("0123"))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("a@b.co"))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail(""))
}

func TestIsValidName(t *testing.T) {
	require.True(t, IsValidName("Priya Sharma"))
	require.True(t, IsValidName("O'Brien"))
	require.False(t, IsValidName("x"))
	require.False(t, IsValidName("1337"))
}
