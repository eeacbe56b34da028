package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupAmount(t *testing.T) {
	assert.Equal(t, 0.0, SignupAmount(nil))
	assert.Equal(t, 3.0, SignupAmount([]MealTag{TagAktiv}))
	assert.Equal(t, 6.0, SignupAmount([]MealTag{TagAktiv, TagGast}))
	assert.Equal(t, 5.5, SignupAmount([]MealTag{TagAktiv, TagReste}))
	assert.Equal(t, 8.5, SignupAmount([]MealTag{TagAktiv, TagGast, TagReste}))

	// Unknown tags cost nothing instead of corrupting the total
	assert.Equal(t, 3.0, SignupAmount([]MealTag{TagAktiv, "spaeter"}))
}

func TestMealStatusCanceled(t *testing.T) {
	assert.False(t, MealStatus("").Canceled())
	assert.False(t, MealActive.Canceled())
	assert.True(t, MealCanceled.Canceled())
	assert.True(t, MealSick.Canceled())
	assert.True(t, MealVacation.Canceled())
}
