package geo

import "math"

// Fence is a circular zone where check-ins and check-outs are considered valid.
// ToleranceMeters caps the GPS accuracy a reading may carry and still count:
// a fix with worse accuracy fails the fence even when nominally inside the radius.
type Fence struct {
	Latitude        float64
	Longitude       float64
	RadiusMeters    float64
	ToleranceMeters float64
}

// DistanceMeters returns the great-circle distance between two coordinates
// in meters, computed with the haversine formula.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// WithinFence reports whether a position with the given GPS accuracy lies
// inside the fence. Both the radius and the accuracy condition must hold.
func WithinFence(lat, lon, accuracyMeters float64, fence Fence) bool {
	distance := DistanceMeters(lat, lon, fence.Latitude, fence.Longitude)
	return distance <= fence.RadiusMeters && accuracyMeters <= fence.ToleranceMeters
}
