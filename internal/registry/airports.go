// Package registry holds the static airport and airline code tables.
// The tables are initialised once and never mutated; accessors hand out copies.
package registry

// Airport is one registered airport as shown in the airport selector.
type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var airports = []Airport{
	{Code: "GMP", Name: "김포"},
	{Code: "CJU", Name: "제주"},
	{Code: "PUS", Name: "부산"},
	{Code: "MWX", Name: "무안"},
	{Code: "YNY", Name: "양양"},
	{Code: "CJJ", Name: "청주"},
	{Code: "TAE", Name: "대구"},
	{Code: "WJU", Name: "원주"},
	{Code: "KPO", Name: "포항경주"},
	{Code: "USN", Name: "울산"},
	{Code: "HIN", Name: "사천"},
	{Code: "KUV", Name: "군산"},
	{Code: "KWJ", Name: "광주"},
	{Code: "RSU", Name: "여수"},
}

// feedNameToCode maps the airport names used inside the upstream feed
// (boardingKor / arrivedKor) to codes. They differ from the selector names.
var feedNameToCode = map[string]string{
	"서울/김포":   "GMP",
	"부산/김해":   "PUS",
	"제주":      "CJU",
	"무안":      "MWX",
	"양양":      "YNY",
	"청주":      "CJJ",
	"대구":      "TAE",
	"원주":      "WJU",
	"포항/포항경주": "KPO",
	"울산":      "USN",
	"진주/사천":   "HIN",
	"군산":      "KUV",
	"광주":      "KWJ",
	"여수":      "RSU",
}

var airportNames = func() map[string]string {
	m := make(map[string]string, len(airports))
	for _, a := range airports {
		m[a.Code] = a.Name
	}
	return m
}()

// Airports returns the registered airports in display order.
func Airports() []Airport {
	out := make([]Airport, len(airports))
	copy(out, airports)
	return out
}

// AirportCodes returns the codes of all registered airports in display order.
func AirportCodes() []string {
	codes := make([]string, len(airports))
	for i, a := range airports {
		codes[i] = a.Code
	}
	return codes
}

// AirportName returns the selector name for a code.
func AirportName(code string) (string, bool) {
	name, ok := airportNames[code]
	return name, ok
}

// IsRegistered reports whether code belongs to a registered airport.
func IsRegistered(code string) bool {
	_, ok := airportNames[code]
	return ok
}

// AirportCodeFromName resolves an airport name as reported by the feed.
// Unknown names resolve to ("", false).
func AirportCodeFromName(feedName string) (string, bool) {
	code, ok := feedNameToCode[feedName]
	return code, ok
}
