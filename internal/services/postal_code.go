package services

import (
	"regexp"
	"strings"
)

var postalCodeFormats = map[string]*regexp.Regexp{
	"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"GB": regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`),
	"IN": regexp.MustCompile(`^\d{6}$`),
	"CA": regexp.MustCompile(`^[A-Z]\d[A-Z] \d[A-Z]\d$`),
	"AU": regexp.MustCompile(`^\d{4}$`),
	"DE": regexp.MustCompile(`^\d{5}$`),
	"FR": regexp.MustCompile(`^\d{5}$`),
	"IT": regexp.MustCompile(`^\d{5}$`),
	"JP": regexp.MustCompile(`^\d{3}-\d{4}$`),
	"BR": regexp.MustCompile(`^\d{5}-\d{3}$`),
}

// Order in which candidate countries are tried against the zip geocoder.
var defaultCountryCodes = []string{"us", "gb", "in", "ca", "au", "de", "fr", "it", "jp", "br"}

// MatchPostalCountries returns the upper-case codes of countries whose postal format
// matches code, in lookup order.
func MatchPostalCountries(code string) []string {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var matches []string
	for _, cc := range defaultCountryCodes {
		upper := strings.ToUpper(cc)
		if postalCodeFormats[upper].MatchString(normalized) {
			matches = append(matches, upper)
		}
	}
	return matches
}

// zipQueryCode returns the code to send to the zip geocoder. The UK and Canada
// are only resolvable by their outward code.
func zipQueryCode(code, country string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if country != "GB" && country != "CA" {
		return normalized
	}
	compact := strings.ReplaceAll(normalized, " ", "")
	if len(compact) <= 3 {
		return compact
	}
	return compact[:len(compact)-3]
}
