package normalize_test

import (
	"testing"

	"github.com/licitavision/placsp-connector/internal/normalize"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercases", input: "MADRID", want: "madrid"},
		{name: "strips accents", input: "Andalucía", want: "andalucia"},
		{name: "strips tilde", input: "Cataluña", want: "cataluna"},
		{name: "hyphens become spaces", input: "Castilla-La Mancha", want: "castilla la mancha"},
		{name: "collapses whitespace", input: "  País \t Vasco  ", want: "pais vasco"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.input))
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"", "Comunidad Valenciana", "castilla-la mancha", "A CORUÑA", "málaga"}
	for _, s := range inputs {
		once := normalize.Fold(s)
		assert.Equal(t, once, normalize.Fold(once), "Fold must be idempotent for %q", s)
	}
}

func TestFoldAccentedAndPlainFormsAgree(t *testing.T) {
	assert.Equal(t, normalize.Fold("Aragón"), normalize.Fold("aragon"))
	assert.Equal(t, normalize.Fold("Cádiz"), normalize.Fold("cadiz"))
}
