// Package airports carries the built-in airport catalog used by the fare
// pages. The catalog is deliberately explicit and complete: every entry has
// coordinates and a fallback image so a run with no metadata key still
// renders a full page.
package airports

import "github.com/lewallen4/flightplight/pkg/models"

var catalog = []models.Airport{
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport", Region: "Georgia", Lat: 33.6407, Lon: -84.4277, Image: "https://upload.wikimedia.org/wikipedia/commons/5/5d/Hartsfield-Jackson_Atlanta_International_Airport_%28ATL%29.jpg"},
	{Code: "LAX", Name: "Los Angeles International Airport", Region: "California", Lat: 33.9416, Lon: -118.4085, Image: "https://upload.wikimedia.org/wikipedia/commons/3/3c/LAX_LA.jpg"},
	{Code: "ORD", Name: "O'Hare International Airport", Region: "Illinois", Lat: 41.9742, Lon: -87.9073, Image: "https://upload.wikimedia.org/wikipedia/commons/7/7f/ORD_Terminal_1.jpg"},
	{Code: "DFW", Name: "Dallas/Fort Worth International Airport", Region: "Texas", Lat: 32.8998, Lon: -97.0403, Image: "https://upload.wikimedia.org/wikipedia/commons/9/9b/DFW_Airport_aerial.jpg"},
	{Code: "DEN", Name: "Denver International Airport", Region: "Colorado", Lat: 39.8561, Lon: -104.6737, Image: "https://upload.wikimedia.org/wikipedia/commons/8/8d/Denver_International_Airport_terminal.jpg"},
	{Code: "JFK", Name: "John F. Kennedy International Airport", Region: "New York", Lat: 40.6413, Lon: -73.7781, Image: "https://upload.wikimedia.org/wikipedia/commons/2/28/JFK_airport_terminal_5.jpg"},
	{Code: "SFO", Name: "San Francisco International Airport", Region: "California", Lat: 37.6213, Lon: -122.3790, Image: "https://upload.wikimedia.org/wikipedia/commons/8/80/SFO_International_Terminal.jpg"},
	{Code: "SEA", Name: "Seattle-Tacoma International Airport", Region: "Washington", Lat: 47.4502, Lon: -122.3088, Image: "https://upload.wikimedia.org/wikipedia/commons/0/0c/Seattle-Tacoma_International_Airport.jpg"},
	{Code: "LAS", Name: "Harry Reid International Airport", Region: "Nevada", Lat: 36.0840, Lon: -115.1537, Image: "https://upload.wikimedia.org/wikipedia/commons/b/bb/McCarran_International_Airport.jpg"},
	{Code: "MCO", Name: "Orlando International Airport", Region: "Florida", Lat: 28.4312, Lon: -81.3081, Image: "https://upload.wikimedia.org/wikipedia/commons/6/6f/Orlando_International_Airport_terminal.jpg"},
	{Code: "MIA", Name: "Miami International Airport", Region: "Florida", Lat: 25.7959, Lon: -80.2870, Image: "https://upload.wikimedia.org/wikipedia/commons/4/44/Miami_International_Airport_%28MIA%29.jpg"},
	{Code: "CLT", Name: "Charlotte Douglas International Airport", Region: "North Carolina", Lat: 35.2144, Lon: -80.9473, Image: "https://upload.wikimedia.org/wikipedia/commons/d/d9/Charlotte_Douglas_International_Airport.jpg"},
	{Code: "PHX", Name: "Phoenix Sky Harbor International Airport", Region: "Arizona", Lat: 33.4373, Lon: -112.0078, Image: "https://upload.wikimedia.org/wikipedia/commons/3/3a/Phoenix_Sky_Harbor_Terminal_4.jpg"},
	{Code: "IAH", Name: "George Bush Intercontinental Airport", Region: "Texas", Lat: 29.9902, Lon: -95.3368, Image: "https://upload.wikimedia.org/wikipedia/commons/e/e0/George_Bush_Intercontinental_Airport.jpg"},
	{Code: "BOS", Name: "Boston Logan International Airport", Region: "Massachusetts", Lat: 42.3656, Lon: -71.0096, Image: "https://upload.wikimedia.org/wikipedia/commons/f/f3/Logan_Airport_aerial.jpg"},
	{Code: "MSP", Name: "Minneapolis-Saint Paul International Airport", Region: "Minnesota", Lat: 44.8848, Lon: -93.2223, Image: "https://upload.wikimedia.org/wikipedia/commons/5/57/MSP_Lindbergh_Terminal.jpg"},
	{Code: "DTW", Name: "Detroit Metropolitan Wayne County Airport", Region: "Michigan", Lat: 42.2162, Lon: -83.3554, Image: "https://upload.wikimedia.org/wikipedia/commons/1/16/DTW_McNamara_Terminal.jpg"},
	{Code: "PHL", Name: "Philadelphia International Airport", Region: "Pennsylvania", Lat: 39.8744, Lon: -75.2424, Image: "https://upload.wikimedia.org/wikipedia/commons/2/2a/Philadelphia_International_Airport.jpg"},
	{Code: "SLC", Name: "Salt Lake City International Airport", Region: "Utah", Lat: 40.7899, Lon: -111.9791, Image: "https://upload.wikimedia.org/wikipedia/commons/c/c8/Salt_Lake_City_International_Airport.jpg"},
	{Code: "PDX", Name: "Portland International Airport", Region: "Oregon", Lat: 45.5898, Lon: -122.5951, Image: "https://upload.wikimedia.org/wikipedia/commons/a/a7/Portland_International_Airport.jpg"},
}

// Catalog returns a copy of the built-in airport list.
func Catalog() []models.Airport {
	out := make([]models.Airport, len(catalog))
	copy(out, catalog)
	return out
}

// ByCode looks up a catalog airport by its IATA code.
func ByCode(code string) (models.Airport, bool) {
	for _, a := range catalog {
		if a.Code == code {
			return a, true
		}
	}
	return models.Airport{}, false
}
