// Package symbols holds the static lookup tables for SMHI condition codes and
// parameter codes.
package symbols

import "math"

// Unknown is returned for condition codes outside the table.
const Unknown = "Unknown"

var conditions = map[int]string{
	1:  "Clear sky",
	2:  "Nearly clear sky",
	3:  "Variable cloudiness",
	4:  "Halfclear sky",
	5:  "Cloudy sky",
	6:  "Overcast",
	7:  "Fog",
	8:  "Light rain showers",
	9:  "Moderate rain showers",
	10: "Heavy rain showers",
	11: "Thunderstorm",
	12: "Light sleet showers",
	13: "Moderate sleet showers",
	14: "Heavy sleet showers",
	15: "Light snow showers",
	16: "Moderate snow showers",
	17: "Heavy snow showers",
	18: "Light rain",
	19: "Moderate rain",
	20: "Heavy rain",
	21: "Thunder",
	22: "Light sleet",
	23: "Moderate sleet",
	24: "Heavy sleet",
	25: "Light snowfall",
	26: "Moderate snowfall",
	27: "Heavy snowfall",
}

// Condition describes a Wsymb2 weather symbol.
func Condition(code int) string {
	if d, ok := conditions[code]; ok {
		return d
	}
	return Unknown
}

// Info is the human description and unit of a parameter code.
type Info struct {
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

var parameters = map[string]Info{
	"t":        {"Temperature", "°C"},
	"ws":       {"Wind Speed", "m/s"},
	"wd":       {"Wind Direction", "°"},
	"r":        {"Relative Humidity", "%"},
	"msl":      {"Air Pressure", "hPa"},
	"vis":      {"Visibility", "km"},
	"tstm":     {"Thunder Probability", "%"},
	"tcc_mean": {"Total Cloud Cover", "octas"},
	"lcc_mean": {"Low Cloud Cover", "octas"},
	"mcc_mean": {"Medium Cloud Cover", "octas"},
	"hcc_mean": {"High Cloud Cover", "octas"},
	"gust":     {"Wind Gust Speed", "m/s"},
	"pmin":     {"Min Precipitation", "mm/h"},
	"pmean":    {"Mean Precipitation", "mm/h"},
	"pmax":     {"Max Precipitation", "mm/h"},
	"pmedian":  {"Median Precipitation", "mm/h"},
	"pcat":     {"Precipitation Category", ""},
	"spp":      {"Snow Probability", "%"},
	"Wsymb2":   {"Weather Symbol", ""},
	"tp":       {"Total Precipitation", "mm"},
}

// Parameter describes a parameter code. Unknown codes describe themselves with no unit.
func Parameter(code string) Info {
	if info, ok := parameters[code]; ok {
		return info
	}
	return Info{Description: code}
}

// ParameterGroups orders the known codes for inventory listings.
var ParameterGroups = []struct {
	Name  string
	Codes []string
}{
	{"Temperature", []string{"t"}},
	{"Wind", []string{"ws", "wd", "gust"}},
	{"Humidity/Pressure", []string{"r", "msl"}},
	{"Visibility", []string{"vis"}},
	{"Clouds", []string{"tcc_mean", "lcc_mean", "mcc_mean", "hcc_mean"}},
	{"Precipitation", []string{"pmean", "pmin", "pmax", "pmedian", "pcat", "tp"}},
	{"Weather Conditions", []string{"Wsymb2", "tstm", "spp"}},
}

var compass = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass converts a wind direction in degrees to a 16-point compass name.
func Compass(deg float64) string {
	i := int(math.Floor((deg+11.25)/22.5)) % 16
	if i < 0 {
		i += 16
	}
	return compass[i]
}
