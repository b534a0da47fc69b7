package models

type DirectionsQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

type IndoorDirectionsQuery struct {
	Start       string `form:"start"`
	Destination string `form:"destination"`
	Disabled    string `form:"disabled"`
}

type UpcomingShuttleQuery struct {
	Longitude string `form:"long"`
	Latitude  string `form:"lat"`
}
