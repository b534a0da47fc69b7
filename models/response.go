package models

type ApiError struct {
	Error    string `json:"error"`
	Upstream any    `json:"upstream_error,omitempty"`
}

type ProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}

type ShuttleStopsResponse struct {
	Stops []ShuttleStop `json:"stops"`
}

type UpcomingShuttlesResponse struct {
	ShuttleStop      ShuttleStop       `json:"shuttle_stop"`
	UpcomingShuttles []UpcomingShuttle `json:"upcoming_shuttles"`
}
