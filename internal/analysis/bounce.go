package analysis

// Bounce is one impact detected in a velocity trace.
type Bounce struct {
	Time         float64
	ImpactSpeed  float64
	ReboundSpeed float64
}

// Ratio is rebound over impact speed, an estimate of effective restitution.
func (b Bounce) Ratio() float64 {
	if b.ImpactSpeed == 0 {
		return 0
	}
	return b.ReboundSpeed / b.ImpactSpeed
}

// DetectBounces finds negative-to-positive crossings of velocity whose impact
// speed exceeds minSpeed. The impact speed is the most negative velocity seen
// since the previous crossing and the rebound speed the first positive sample.
func DetectBounces(times, velocities []float64, minSpeed float64) []Bounce {
	n := len(times)
	if len(velocities) < n {
		n = len(velocities)
	}

	bounces := make([]Bounce, 0)
	impact := 0.0

	for i := 1; i < n; i++ {
		prev, curr := velocities[i-1], velocities[i]
		if prev < impact {
			impact = prev
		}

		if prev < 0 && curr > 0 {
			if -impact > minSpeed {
				bounces = append(bounces, Bounce{
					Time:         times[i],
					ImpactSpeed:  -impact,
					ReboundSpeed: curr,
				})
			}
			impact = 0
		}
	}
	return bounces
}
