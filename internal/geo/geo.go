package geo

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degToRad converts degrees to radians.
const degToRad = math32.Pi / 180

// ToCartesian maps a geographic position (degrees) onto a sphere of the given radius.
// Y is the polar axis; longitude 0 faces +Z and longitude 90 faces +X:
//
//	x = r·cos(lat)·sin(lng)
//	y = r·sin(lat)
//	z = r·cos(lat)·cos(lng)
//
// This is the only place the convention is defined. Marker dots and their hit volumes both use it,
// so a change here moves both together.
func ToCartesian(latitude, longitude, radius float32) mgl32.Vec3 {
	lat := latitude * degToRad
	lng := longitude * degToRad
	cosLat := math32.Cos(lat)
	return mgl32.Vec3{
		radius * cosLat * math32.Sin(lng),
		radius * math32.Sin(lat),
		radius * cosLat * math32.Cos(lng),
	}
}

// ToGeographic is the inverse of ToCartesian. The origin maps to (0, 0, 0).
func ToGeographic(p mgl32.Vec3) (latitude, longitude, radius float32) {
	radius = p.Len()
	if radius < 1e-6 {
		return 0, 0, 0
	}
	latitude = math32.Asin(clampUnit(p[1]/radius)) / degToRad
	longitude = math32.Atan2(p[0], p[2]) / degToRad
	return latitude, longitude, radius
}

// LiftedRadius returns the radius of a point raised above a globe by an altitude fraction.
func LiftedRadius(globeRadius, altitude float32) float32 {
	return globeRadius * (1 + altitude)
}

// ArcLength converts an angular size in degrees to a distance on a sphere of the given radius.
func ArcLength(degrees, radius float32) float32 {
	return degrees * degToRad * radius
}

func clampUnit(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
