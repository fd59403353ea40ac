package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"first.last@sub.example.org", true},
		{"invalid-email", false},
		{"@example.com", false},
		{"test@", false},
		{"test@example", false},
		{"te st@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsNotEmpty(t *testing.T) {
	assert.True(t, IsNotEmpty("Maria"))
	assert.True(t, IsNotEmpty("  x  "))
	assert.False(t, IsNotEmpty(""))
	assert.False(t, IsNotEmpty("   \t\n"))
}

func TestIsFutureDate(t *testing.T) {
	assert.True(t, IsFutureDate(time.Now().Add(time.Hour)))
	assert.False(t, IsFutureDate(time.Now().Add(-time.Hour)))
}

func TestHasMinLength(t *testing.T) {
	assert.True(t, HasMinLength("abc", 3))
	assert.False(t, HasMinLength("ab", 3))
	assert.True(t, HasMinLength("ção", 3))
}

func TestHasRequiredFields(t *testing.T) {
	due := time.Now()
	empty := ""

	assert.True(t, HasRequiredFields(map[string]interface{}{
		"title":   "T",
		"dueDate": due,
	}))
	assert.False(t, HasRequiredFields(map[string]interface{}{"title": ""}))
	assert.False(t, HasRequiredFields(map[string]interface{}{"title": nil}))
	assert.False(t, HasRequiredFields(map[string]interface{}{"dueDate": time.Time{}}))
	assert.False(t, HasRequiredFields(map[string]interface{}{"dueDate": (*time.Time)(nil)}))
	assert.False(t, HasRequiredFields(map[string]interface{}{"email": &empty}))
	assert.True(t, HasRequiredFields(map[string]interface{}{}))
}
