package dtos

import (
	"regional-airports/flightboard/internal/models"
	"regional-airports/flightboard/internal/registry"
)

// BoardQuery carries the user's presentation choices.
type BoardQuery struct {
	ShowAll bool
	// Airline filters by airline display name; "" or "all" disables the filter.
	Airline string
}

// Board is the reconciled, filtered view of one airport rendered by the page endpoint.
type Board struct {
	AirportCode      string                `json:"airport_code"`
	AirportName      string                `json:"airport_name"`
	AirportImagePath string                `json:"airport_image_path"`
	CurrentTime      string                `json:"current_time"`
	ShowAll          bool                  `json:"show_all"`
	Departures       []models.FlightRecord `json:"departures"`
	Arrivals         []models.FlightRecord `json:"arrivals"`
	Airports         []registry.Airport    `json:"airports"`
	AirlineLogos     map[string]string     `json:"airline_logos"`
}

// AirlineSummary is one airline operating at an airport.
type AirlineSummary struct {
	AirlineCode string `json:"airlineCode"`
	AirlineName string `json:"airlineName"`
}
