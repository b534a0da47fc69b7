package models

type Profile string

const (
	FootWalking      Profile = "foot-walking"
	CyclingRegular   Profile = "cycling-regular"
	DrivingCar       Profile = "driving-car"
	Wheelchair       Profile = "wheelchair"
	PublicTransport  Profile = "public-transport"
	ConcordiaShuttle Profile = "concordia-shuttle"
	Unknown          Profile = ""
)

// Profiles lists every profile the directions endpoints accept, in display order.
var Profiles = []Profile{
	FootWalking,
	CyclingRegular,
	DrivingCar,
	Wheelchair,
	PublicTransport,
	ConcordiaShuttle,
}
