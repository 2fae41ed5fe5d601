package ipinfolib

import (
	"fmt"
	"strings"

	"github.com/pariz/gountries"
)

var countryCodeQuery = gountries.New()

// NormalizeAlpha2Code returns a normalized 2-letter ISO3166 code.
// Normalized code is uppercased with some additional mapping. For
// example, some databases return ZZ as 'unknown' country. This function
// returns "" instead. Some still map United Kingdom to UK. This
// correctly maps UK to GB.
func NormalizeAlpha2Code(alpha2 string) string {
	alpha2 = strings.ToUpper(strings.TrimSpace(alpha2))

	if len(alpha2) != 2 {
		return ""
	}

	switch alpha2 {
	case "ZZ", "AP", "EU":
		return ""
	case "YU":
		return "CS"
	case "FX":
		return "FR"
	case "UK":
		return "GB"
	default:
		return alpha2
	}
}

// CountryFlagEmoji returns a flag made of 2 regional indicator symbols
// and a textual form of their codepoints.
func CountryFlagEmoji(alpha2 string) (string, string) {
	alpha2 = NormalizeAlpha2Code(alpha2)
	if alpha2 == "" {
		return "", ""
	}

	emoji := strings.Builder{}
	codepoints := make([]string, 0, 2)

	for _, letter := range alpha2 {
		if letter < 'A' || letter > 'Z' {
			return "", ""
		}

		indicator := 0x1F1E6 + (letter - 'A')

		emoji.WriteRune(indicator)
		codepoints = append(codepoints, fmt.Sprintf("U+%X", indicator))
	}

	return emoji.String(), strings.Join(codepoints, " ")
}

func continentOf(country gountries.Country) (string, string) {
	switch country.Region {
	case "Africa":
		return "AF", "Africa"
	case "Asia":
		return "AS", "Asia"
	case "Europe":
		return "EU", "Europe"
	case "Oceania":
		return "OC", "Oceania"
	case "Antarctic", "Antarctica":
		return "AN", "Antarctica"
	case "Americas":
		if country.SubRegion == "South America" {
			return "SA", "South America"
		}

		return "NA", "North America"
	}

	return "", ""
}

// enrichPayload adds country details which are missing in payload. It
// never overwrites keys which came from ipinfo.io.
func enrichPayload(data payload) {
	code := NormalizeAlpha2Code(data.str("country").UnwrapOr(""))
	if code == "" {
		return
	}

	country, ok := countryCodeQuery.Countries[code]
	if !ok {
		return
	}

	setDefault := func(key string, value interface{}) {
		if _, ok := data[key]; !ok {
			data[key] = value
		}
	}

	if country.Name.Common != "" {
		setDefault("country_name", country.Name.Common)
	}

	setDefault("is_eu", country.EuMember)

	if emoji, unicode := CountryFlagEmoji(code); emoji != "" {
		setDefault("country_flag", map[string]interface{}{
			"emoji":   emoji,
			"unicode": unicode,
		})
	}

	if len(country.Currencies) > 0 {
		setDefault("country_currency", map[string]interface{}{
			"code": country.Currencies[0],
		})
	}

	if continentCode, continentName := continentOf(country); continentCode != "" {
		setDefault("continent", map[string]interface{}{
			"code": continentCode,
			"name": continentName,
		})
	}
}
