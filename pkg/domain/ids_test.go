package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "safeher/pkg/domain-errors"
)

// TestParseUsername_Invariants validates the trust-boundary rule:
// "usernames are 3-50 characters of letters, digits and underscores".
func TestParseUsername_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE routines;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "demo\x00user", true},
		{"Oversized input", strings.Repeat("a", 51), true},
		{"Too short", "ab", true},
		{"Empty string", "", true},
		{"Whitespace only", "   ", true},
		{"Hyphen", "demo-user", true},

		{"Minimum length", "abc", false},
		{"Maximum length", strings.Repeat("a", 50), false},
		{"Underscore and digits", "demo_user_42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUsername(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Username(tt.input), got)
		})
	}
}

func TestParseRoutineID(t *testing.T) {
	t.Run("accepts positive integers", func(t *testing.T) {
		id, err := ParseRoutineID("42")
		require.NoError(t, err)
		assert.Equal(t, RoutineID(42), id)
		assert.Equal(t, "42", id.String())
	})

	for _, input := range []string{"", "0", "-3", "abc", "1.5"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := ParseRoutineID(input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestParseContactID(t *testing.T) {
	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseContactID(uuid.Nil.String())
		require.Error(t, err)
	})

	t.Run("round-trips valid UUID", func(t *testing.T) {
		u := uuid.New()
		id, err := ParseContactID(u.String())
		require.NoError(t, err)
		assert.Equal(t, u.String(), id.String())
	})
}

func TestParseDays(t *testing.T) {
	t.Run("empty yields empty set", func(t *testing.T) {
		days, err := ParseDays("")
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("normalizes case and drops duplicates", func(t *testing.T) {
		days, err := ParseDays("mon, WED,Fri,mon")
		require.NoError(t, err)
		assert.Equal(t, Days{Monday, Wednesday, Friday}, days)
		assert.Equal(t, "Mon,Wed,Fri", days.String())
	})

	t.Run("rejects unknown day", func(t *testing.T) {
		_, err := ParseDays("Mon,Funday")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
