package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type draftRequest struct {
	Name   string   `validate:"required,min=1,max=200"`
	Slug   string   `validate:"omitempty,slug"`
	Price  *float64 `validate:"required,gte=0"`
	Rating int      `validate:"omitempty,gte=1,lte=5"`
}

func TestValidateStructFormatsTagFailures(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(draftRequest{Slug: "Not A Slug!"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")
	require.Contains(t, err.Error(), "slug may only contain lowercase letters, digits and hyphens")
	require.Contains(t, err.Error(), "price is required")
}

func TestValidateStructBounds(t *testing.T) {
	v := NewValidator()
	price := -1.0

	err := v.ValidateStruct(draftRequest{Name: "Bolo", Price: &price, Rating: 9})
	require.Error(t, err)
	require.Contains(t, err.Error(), "price must be greater than or equal to 0")
	require.Contains(t, err.Error(), "rating must be less than or equal to 5")
}

func TestValidateStructAcceptsValid(t *testing.T) {
	v := NewValidator()
	price := 120.0

	require.NoError(t, v.ValidateStruct(draftRequest{
		Name:   "Bolo de Aniversário",
		Slug:   "bolo-de-aniversario",
		Price:  &price,
		Rating: 5,
	}))
}

func TestValidateEmail(t *testing.T) {
	require.True(t, ValidateEmail("paula@example.com"))
	require.False(t, ValidateEmail("not-an-email"))
	require.False(t, ValidateEmail("a@"))
}
