package models

// FlightState is one live aircraft record projected out of the upstream
// positional array. Nullable upstream fields are pointers so the embedded
// JSON carries explicit nulls instead of dropping keys.
type FlightState struct {
	ICAO24        string   `json:"icao24"`
	Callsign      string   `json:"callsign"`
	OriginCountry string   `json:"origin_country"`
	TimePosition  *int64   `json:"time_position"`
	LastContact   *int64   `json:"last_contact"`
	Longitude     *float64 `json:"longitude"`
	Latitude      *float64 `json:"latitude"`
	BaroAltitude  *float64 `json:"baro_altitude"`
	OnGround      bool     `json:"on_ground"`
	Velocity      *float64 `json:"velocity"`
	Heading       *float64 `json:"heading"`
	VerticalRate  *float64 `json:"vertical_rate"`
}

// Airport is one entry from the built-in catalog, optionally overlaid with
// values fetched from the metadata APIs.
type Airport struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Region string  `json:"state"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Image  string  `json:"image"`
}

// FareEntry is a synthetic (month label, price) pair. Prices are demo data
// regenerated on every run; they have no relation to real pricing.
type FareEntry struct {
	Month string `json:"month"`
	Price int    `json:"price"`
}

// FareSheet attaches a year of monthly fares to an airport.
type FareSheet struct {
	Airport Airport     `json:"airport"`
	Fares   []FareEntry `json:"fares"`
}
