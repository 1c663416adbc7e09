package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/jingfdev/pawhere/pkg/domainerrors"
)

func TestNewRegistration(t *testing.T) {
	t.Run("assigns identity and timestamp", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()

		reg, err := NewRegistration(id, Answers{Email: "a@b.com"}, now)
		require.NoError(t, err)
		assert.Equal(t, id, reg.ID)
		assert.Equal(t, now, reg.CreatedAt)
		assert.False(t, reg.IsVIP)
		assert.Nil(t, reg.OwnsPet)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		_, err := NewRegistration(uuid.New(), Answers{}, time.Now())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewRegistration(uuid.New(), Answers{Email: "nope"}, time.Now())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestStringListLeniency(t *testing.T) {
	type payload struct {
		Tags StringList `json:"tags"`
	}

	tests := []struct {
		name     string
		body     string
		expected StringList
	}{
		{
			name:     "well-formed array",
			body:     `{"tags":["Getting lost","Stolen"]}`,
			expected: StringList{"Getting lost", "Stolen"},
		},
		{
			name:     "scalar coerced to nil",
			body:     `{"tags":"Getting lost"}`,
			expected: nil,
		},
		{
			name:     "object coerced to nil",
			body:     `{"tags":{"a":1}}`,
			expected: nil,
		},
		{
			name:     "mixed-type array coerced to nil",
			body:     `{"tags":["ok",3]}`,
			expected: nil,
		},
		{
			name:     "null stays nil",
			body:     `{"tags":null}`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.expected, p.Tags)
		})
	}
}

func TestYesNoValid(t *testing.T) {
	assert.True(t, Yes.Valid())
	assert.True(t, No.Valid())
	assert.False(t, YesNo("maybe").Valid())
	assert.False(t, YesNo("").Valid())
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{
		{Path: "email", Message: "Email is required", Code: ErrCodeRequired},
		{Path: "ownsPet", Message: "Must be one of: yes, no", Code: ErrCodeInvalidEnum},
	}
	assert.Equal(t, "invalid registration data: email, ownsPet", errs.Error())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("phone"))
}
