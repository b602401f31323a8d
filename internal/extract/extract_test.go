package extract_test

import (
	"testing"

	"github.com/licitavision/placsp-connector/internal/extract"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "grouped amount", text: "importe total 12.345,67 euros", want: "12.345,67", found: true},
		{name: "first match wins", text: "de 1.000,00 a 2.000,00", want: "1.000,00", found: true},
		{name: "ungrouped amount", text: "presupuesto 950,50", want: "950,50", found: true},
		{name: "no fractional digits", text: "valor 12.345 euros", want: "", found: false},
		{name: "empty", text: "", want: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.Amount(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAwardingBody(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "organo label",
			text:  "órgano de contratación: Ayuntamiento de Sevilla\nexpediente 12",
			want:  "Ayuntamiento de Sevilla",
			found: true,
		},
		{
			name:  "folded label",
			text:  "organo de contratacion - Diputación de Cádiz; otros datos",
			want:  "Diputación de Cádiz",
			found: true,
		},
		{
			name:  "entidad label",
			text:  "ENTIDAD ADJUDICADORA: Universidad de Granada",
			want:  "Universidad de Granada",
			found: true,
		},
		{name: "no label present", text: "contrato de obras en madrid", want: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.AwardingBody(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCPVGuess(t *testing.T) {
	got, ok := extract.CPVGuess("cpv: 45233140 obras de carreteras")
	assert.True(t, ok)
	assert.Equal(t, "45233140", got)

	_, ok = extract.CPVGuess("codigo 1234567 incompleto")
	assert.False(t, ok)

	// 9-digit runs are not standalone 8-digit tokens.
	_, ok = extract.CPVGuess("numero 123456789")
	assert.False(t, ok)
}
