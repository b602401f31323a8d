// Package geo maps Spanish autonomous-community names to the province
// tokens used to match notice text. Lookups are accent- and
// case-insensitive and tolerate common regional name variants.
package geo

import (
	"strings"

	"github.com/licitavision/placsp-connector/internal/normalize"
)

// provincesByRegion maps a normalized community name to its provinces.
// Keys and values are stored in folded form (see normalize.Fold) because
// the values are used as substring filters over folded notice text.
var provincesByRegion = map[string][]string{
	"andalucia":          {"sevilla", "cadiz", "cordoba", "jaen", "granada", "almeria", "huelva", "malaga"},
	"madrid":             {"madrid"},
	"cataluna":           {"barcelona", "tarragona", "lleida", "gerona", "girona"},
	"valencia":           {"valencia", "castellon", "alicante"},
	"galicia":            {"a coruna", "lugo", "ourense", "orense", "pontevedra"},
	"castilla y leon":    {"valladolid", "burgos", "leon", "zamora", "soria", "palencia", "segovia", "salamanca", "avila"},
	"castilla la mancha": {"toledo", "cuenca", "ciudad real", "albacete", "guadalajara"},
	"pais vasco":         {"alava", "vizcaya", "bizkaia", "guipuzcoa", "gipuzkoa"},
	"canarias":           {"las palmas", "santa cruz de tenerife"},
	"aragon":             {"zaragoza", "huesca", "teruel"},
	"extremadura":        {"badajoz", "caceres"},
	"murcia":             {"murcia"},
	"navarra":            {"navarra"},
	"cantabria":          {"cantabria"},
	"asturias":           {"asturias"},
	"la rioja":           {"la rioja"},
	"baleares":           {"islas baleares", "baleares"},
	"ceuta":              {"ceuta"},
	"melilla":            {"melilla"},
}

// regionAliases canonicalizes regional name variants (co-official
// language forms, long official names) before the province lookup.
var regionAliases = map[string]string{
	"comunidad valenciana": "valencia",
	"comunitat valenciana": "valencia",
	"catalunya":            "cataluna",
	"euskadi":              "pais vasco",
	"comunidad de madrid":  "madrid",
	"region de murcia":     "murcia",
	"illes balears":        "baleares",
	"islas baleares":       "baleares",
	"principado de asturias": "asturias",
	"comunidad foral de navarra": "navarra",
}

// Localities resolves a list of raw region-name parameters into the flat
// list of locality tokens used for substring matching. Each parameter may
// carry several comma-joined names. Unknown names never fail: they pass
// through as their own locality token, degrading to a direct substring
// filter.
func Localities(regions []string) []string {
	var out []string
	for _, param := range regions {
		for _, raw := range strings.Split(param, ",") {
			name := normalize.Fold(raw)
			if name == "" {
				continue
			}
			if canonical, ok := regionAliases[name]; ok {
				name = canonical
			}
			if provinces, ok := provincesByRegion[name]; ok {
				out = append(out, provinces...)
				continue
			}
			out = append(out, name)
		}
	}
	return out
}

// IsKnownRegion reports whether name resolves to a configured community.
func IsKnownRegion(name string) bool {
	folded := normalize.Fold(name)
	if canonical, ok := regionAliases[folded]; ok {
		folded = canonical
	}
	_, ok := provincesByRegion[folded]
	return ok
}
