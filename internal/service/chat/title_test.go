package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"trims whitespace", "  Sleep Troubles  ", "Sleep Troubles"},
		{"strips double quotes", `"Sleep Troubles"`, "Sleep Troubles"},
		{"strips curly quotes", "“Sleep Troubles”", "Sleep Troubles"},
		{"first line only", "Sleep Troubles\nThis title reflects...", "Sleep Troubles"},
		{"drops label", "Title: Sleep Troubles", "Sleep Troubles"},
		{"truncates by rune", "Ünterstützung für schwierige Zeiten", "Ünterstützung für schwierige Z"},
		{"no trailing space after cut", "Finding Balance In Everyday Life", "Finding Balance In Everyday Li"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTitle(tt.raw, 30))
		})
	}
}
