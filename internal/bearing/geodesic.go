package bearing

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used for distances
const EarthRadiusKm = 6371.0

// DistanceKm calculates the haversine great-circle distance between two points in kilometers
func DistanceKm(a, b GeoCoordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return EarthRadiusKm * centralAngle(a, b), nil
}

func centralAngle(a, b GeoCoordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	deltaPhi := toRadians(b.Lat - a.Lat)
	deltaLambda := toRadians(b.Lon - a.Lon)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// GreatCirclePath returns segments+1 points evenly spaced along the great circle from a to b,
// both endpoints included. Coincident or antipodal endpoints have no unique great circle and
// yield just the two endpoints.
func GreatCirclePath(a, b GeoCoordinate, segments int) ([]GeoCoordinate, error) {
	if segments < 1 {
		return nil, fmt.Errorf("segments must be positive, got %d", segments)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	delta := centralAngle(a, b)
	sinDelta := math.Sin(delta)
	if sinDelta < 1e-12 {
		return []GeoCoordinate{a, b}, nil
	}

	phi1, lambda1 := toRadians(a.Lat), toRadians(a.Lon)
	phi2, lambda2 := toRadians(b.Lat), toRadians(b.Lon)

	points := make([]GeoCoordinate, 0, segments+1)
	for i := 0; i <= segments; i++ {
		f := float64(i) / float64(segments)
		p := math.Sin((1-f)*delta) / sinDelta
		q := math.Sin(f*delta) / sinDelta

		x := p*math.Cos(phi1)*math.Cos(lambda1) + q*math.Cos(phi2)*math.Cos(lambda2)
		y := p*math.Cos(phi1)*math.Sin(lambda1) + q*math.Cos(phi2)*math.Sin(lambda2)
		z := p*math.Sin(phi1) + q*math.Sin(phi2)

		points = append(points, GeoCoordinate{
			Lat: toDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
			Lon: toDegrees(math.Atan2(y, x)),
		})
	}
	// Pin the endpoints so callers see the exact inputs.
	points[0] = a
	points[segments] = b
	return points, nil
}
