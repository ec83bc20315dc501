// Package mains works out the local mains frequency, used to look for
// electrical hum in recordings.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// DefaultHz is assumed whenever the country cannot be determined.
// It is the more common frequency worldwide.
const DefaultHz = 50

// Resolve turns the configured mains setting into a frequency: 0 means
// detect from the system timezone, a negative value disables hum checks
// (returns 0) and 50 or 60 are used as given. Anything else is detected.
func Resolve(setting int) int {
	switch {
	case setting < 0:
		return 0
	case setting == 50 || setting == 60:
		return setting
	default:
		hz, _ := Detect()
		return hz
	}
}

// Detect returns the mains frequency for the system timezone together with
// the timezone name it was derived from (empty when lookup failed).
func Detect() (int, string) {
	zone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return DefaultHz, ""
	}
	return ForTimezone(zone), zone
}

// ForTimezone returns the mains frequency for an IANA timezone name.
func ForTimezone(zone string) int {
	// UTC and the Etc/ zones carry no country
	if zone == "" || zone == "UTC" || zone == "GMT" || strings.HasPrefix(zone, "Etc/") {
		return DefaultHz
	}

	countries, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return DefaultHz
	}
	country, err := countries.GetCountry(zone)
	if err != nil {
		return DefaultHz
	}
	return ForCountry(country)
}

// ForCountry returns the mains frequency for a country name.
// Japan is split by region; the 50 Hz east includes Tokyo.
func ForCountry(country string) int {
	if sixtyHz[country] {
		return 60
	}
	return DefaultHz
}

// sixtyHz is the set of countries on 60 Hz mains; everywhere else is 50 Hz.
// Brazil has both, with 60 Hz predominant.
var sixtyHz = setOf(
	// North and Central America
	"United States", "Canada", "Mexico", "Belize", "Costa Rica",
	"El Salvador", "Guatemala", "Honduras", "Nicaragua", "Panama",
	// Caribbean
	"Bahamas", "Barbados", "Cayman Islands", "Cuba", "Dominican Republic",
	"Haiti", "Jamaica", "Puerto Rico", "Trinidad and Tobago", "U.S. Virgin Islands",
	// South America
	"Brazil", "Colombia", "Ecuador", "Guyana", "Peru", "Suriname", "Venezuela",
	// Asia
	"South Korea", "Taiwan", "Philippines", "Saudi Arabia",
	// Pacific
	"Guam", "American Samoa", "Marshall Islands", "Micronesia", "Palau",
)

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
