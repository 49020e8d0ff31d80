package registry

var iataToICAO = map[string]string{
	"KE": "KAL",
	"OZ": "OZ",
	"7C": "JJA",
	"LJ": "JNA",
	"BX": "BX",
	"ZE": "ESR",
	"KJ": "AIH",
	"RS": "ASV",
	"4V": "FGW",
	"TW": "TWB",
	"YP": "APZ",
	"RF": "EOK",
	"4H": "HGG",
}

var airlineLogos = map[string]string{
	"4H": "4h.png",
	"4V": "4v.gif",
	"7C": "7c.png",
	"BX": "bx.gif",
	"KE": "ke.gif",
	"KJ": "kj.gif",
	"LJ": "lj.png",
	"OZ": "oz.png",
	"RF": "rf.jpg",
	"RS": "rs.gif",
	"TW": "tw.gif",
	"YO": "yo.png",
	"ZE": "ze.png",
}

// IATAToICAO converts a two-letter carrier code. Unmapped codes pass through unchanged.
func IATAToICAO(iata string) string {
	if icao, ok := iataToICAO[iata]; ok {
		return icao
	}
	return iata
}

// AirlineLogo returns the logo file name for a carrier code.
func AirlineLogo(iata string) (string, bool) {
	logo, ok := airlineLogos[iata]
	return logo, ok
}

// AirlineLogos returns a copy of the carrier code -> logo table.
func AirlineLogos() map[string]string {
	out := make(map[string]string, len(airlineLogos))
	for k, v := range airlineLogos {
		out[k] = v
	}
	return out
}

// CarrierPrefix splits a flight number such as "KE1401" into "KE" and "1401".
// Flight numbers shorter than two characters are returned whole as the prefix.
func CarrierPrefix(flightNumber string) (prefix, suffix string) {
	if len(flightNumber) <= 2 {
		return flightNumber, ""
	}
	return flightNumber[:2], flightNumber[2:]
}
