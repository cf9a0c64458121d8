package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"Basic", Basic},
		{"diamond", Diamond},
		{"  INFINITY ", Infinity},
		{"script", Script},
		{"None", None},
		{"", None},
		{"platinum", None},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestHasAccess_AllPairs(t *testing.T) {
	for _, user := range Order {
		for _, required := range Order {
			want := Hierarchy[user] >= Hierarchy[required]
			assert.Equal(t, want, HasAccess(user, required), "user=%s required=%s", user, required)
		}
	}
}

func TestHasAccess_UnknownFailsClosed(t *testing.T) {
	assert.False(t, HasAccess(Tier("Gold"), Basic))
	assert.False(t, HasAccess(Script, Tier("Gold")))
	assert.False(t, HasAccess(Tier(""), None))
	assert.False(t, HasAccess(Tier("script"), Basic), "raw values must be parsed first")
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, None.Rank())
	assert.Equal(t, 4, Script.Rank())
	assert.Equal(t, -1, Tier("Gold").Rank())
}

func TestAccessible(t *testing.T) {
	assert.Equal(t, []Tier{None, Basic, Diamond}, Accessible(Diamond))
	assert.Equal(t, []Tier{None}, Accessible(None))
	assert.Nil(t, Accessible(Tier("Gold")))
}
