package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const campus = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func TestClassUUIDDeterministic(t *testing.T) {
	a := ClassUUID(campus, "Grade 5")
	b := ClassUUID(campus, "Grade 5")
	assert.Equal(t, a, b)
	assert.EqualValues(t, 5, a.Version())
}

func TestClassUUIDDistinctInputs(t *testing.T) {
	assert.NotEqual(t, ClassUUID(campus, "Grade 5"), ClassUUID(campus, "Grade 6"))
	assert.NotEqual(t, ClassUUID(campus, "Grade 5"), ClassUUID("other-campus", "Grade 5"))
}

func TestNoCrossNamespaceCollision(t *testing.T) {
	// Same raw key must still map to different ids in the two spaces.
	assert.NotEqual(t, ClassUUID(campus, "grade5student"), StudentUUID("grade5student"))
	assert.NotEqual(t, StudentUUID("Grade 5"), ClassUUID(campus, "Grade 5"))
}

func TestStudentUUIDDeterministic(t *testing.T) {
	assert.Equal(t, StudentUUID("jdoe2024"), StudentUUID("jdoe2024"))
	assert.NotEqual(t, StudentUUID("jdoe2024"), StudentUUID("jdoe2025"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
	assert.True(t, IsUUID(StudentUUID("jdoe2024").String()))
	assert.False(t, IsUUID("jdoe2024"))
	assert.False(t, IsUUID(""))
}
