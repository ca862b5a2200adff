package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole_Normalizes(t *testing.T) {
	assert.Equal(t, RolePatient, ParseRole("Patient"))
	assert.Equal(t, RoleDoctor, ParseRole("DOCTOR"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	// Unknown values pass through in lowercase for the caller to judge.
	assert.Equal(t, Role("caretaker"), ParseRole("Caretaker"))
}

func TestRole_IsKnown(t *testing.T) {
	assert.True(t, RolePatient.IsKnown())
	assert.True(t, RoleDoctor.IsKnown())
	assert.True(t, RoleAdmin.IsKnown())
	assert.False(t, Role("caretaker").IsKnown())
	assert.False(t, Role("").IsKnown())
}

func TestRole_SelfRegisterable(t *testing.T) {
	assert.True(t, RolePatient.SelfRegisterable())
	assert.True(t, RoleDoctor.SelfRegisterable())
	assert.False(t, RoleAdmin.SelfRegisterable())
	assert.False(t, Role("nurse").SelfRegisterable())
}
