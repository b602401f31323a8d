package geo_test

import (
	"testing"

	"github.com/licitavision/placsp-connector/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestLocalitiesExpandsRegionToProvinces(t *testing.T) {
	got := geo.Localities([]string{"Andalucía"})
	assert.Contains(t, got, "sevilla")
	assert.Contains(t, got, "malaga")
	assert.Len(t, got, 8)
}

func TestLocalitiesSplitsCommaJoinedParams(t *testing.T) {
	got := geo.Localities([]string{"madrid,La Rioja"})
	assert.Equal(t, []string{"madrid", "la rioja"}, got)
}

func TestLocalitiesUnknownRegionPassesThrough(t *testing.T) {
	got := geo.Localities([]string{"Villarriba"})
	assert.Equal(t, []string{"villarriba"}, got)
}

func TestLocalitiesAliasResolvesToSameSet(t *testing.T) {
	canonical := geo.Localities([]string{"valencia"})
	aliased := geo.Localities([]string{"Comunitat Valenciana"})
	official := geo.Localities([]string{"Comunidad Valenciana"})
	assert.Equal(t, canonical, aliased)
	assert.Equal(t, canonical, official)
}

func TestLocalitiesAccentAndHyphenInsensitive(t *testing.T) {
	assert.Equal(t,
		geo.Localities([]string{"castilla-la mancha"}),
		geo.Localities([]string{"Castilla La Mancha"}),
	)
	assert.Equal(t,
		geo.Localities([]string{"cataluña"}),
		geo.Localities([]string{"Catalunya"}),
	)
}

func TestLocalitiesSkipsEmptyTokens(t *testing.T) {
	got := geo.Localities([]string{" , madrid, "})
	assert.Equal(t, []string{"madrid"}, got)
}

func TestIsKnownRegion(t *testing.T) {
	assert.True(t, geo.IsKnownRegion("Euskadi"))
	assert.True(t, geo.IsKnownRegion("galicia"))
	assert.False(t, geo.IsKnownRegion("narnia"))
}
