package dto

type AirportResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ListAirportsResponse struct {
	Airports []AirportResponse `json:"airports"`
}
