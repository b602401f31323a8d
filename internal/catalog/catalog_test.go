package catalog_test

import (
	"testing"

	"github.com/licitavision/placsp-connector/internal/catalog"
	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesRequiresScrapedData(t *testing.T) {
	_, err := catalog.Codes(nil)
	assert.ErrorIs(t, err, domain.ErrScrapeRequired)

	_, err = catalog.Codes(map[string]string{})
	assert.ErrorIs(t, err, domain.ErrScrapeRequired)
}

func TestCodesSortedAndDeduplicated(t *testing.T) {
	cpvs := map[string]string{
		"https://a": "45233140 Obras de carreteras",
		"https://b": "45233140 Obras de carreteras",
		"https://c": "30192000 Material de oficina 45233140 Obras de carreteras",
	}

	codes, err := catalog.Codes(cpvs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"30192000 Material de oficina",
		"45233140 Obras de carreteras",
	}, codes)
}

func TestCodesSegmentsMultiCodeStrings(t *testing.T) {
	cpvs := map[string]string{
		"https://a": "45233140 - Obras de carreteras 45233200 Trabajos de pavimentación",
	}

	codes, err := catalog.Codes(cpvs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"45233140 - Obras de carreteras",
		"45233200 Trabajos de pavimentación",
	}, codes)
}

func TestCodesIgnoresStringsWithoutCodes(t *testing.T) {
	cpvs := map[string]string{
		"https://a": "",
		"https://b": "sin clasificar",
		"https://c": "45233140 Obras",
	}

	codes, err := catalog.Codes(cpvs)
	require.NoError(t, err)
	assert.Equal(t, []string{"45233140 Obras"}, codes)
}

func TestFilterRequiresScrapedData(t *testing.T) {
	_, err := catalog.Filter(map[string]string{}, []string{"45233140"})
	assert.ErrorIs(t, err, domain.ErrScrapeRequired)
}

func TestFilterIntersectsSelection(t *testing.T) {
	cpvs := map[string]string{
		"https://a": "45233140 Obras de carreteras",
		"https://b": "30192000 Material de oficina",
		"https://c": "45233140 Obras de carreteras 30192000 Material de oficina",
	}

	results, err := catalog.Filter(cpvs, []string{"45233140 Obras de carreteras"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Contains(t, results, "https://a")
	assert.Contains(t, results, "https://c")
	assert.Equal(t,
		[]string{"45233140 Obras de carreteras", "30192000 Material de oficina"},
		results["https://c"],
	)
}

func TestFilterEmptySelectionMatchesNothing(t *testing.T) {
	cpvs := map[string]string{"https://a": "45233140 Obras"}

	results, err := catalog.Filter(cpvs, []string{" ", ""})
	require.NoError(t, err)
	assert.Empty(t, results)
}
