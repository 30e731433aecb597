package trace

// latencyBands holds the base latency range in milliseconds per service type.
var latencyBands = map[string][2]float64{
	"rest":         {5, 150},
	"grpc":         {1, 50},
	"event_driven": {10, 500},
	"graphql":      {10, 200},
	"batch":        {100, 5000},
}

// defaultLatencyBand applies to unrecognized service types.
var defaultLatencyBand = [2]float64{5, 100}

// simulateLatency draws a hop latency in milliseconds from the service
// type's base band. Failing hops get a timeout-like multiplier, and any hop
// has a 5% chance of an additional latency spike.
func (s *Synthesizer) simulateLatency(serviceType string, isError bool) float64 {
	band, ok := latencyBands[serviceType]
	if !ok {
		band = defaultLatencyBand
	}

	latency := s.uniform(band[0], band[1])

	if isError {
		// Errors often come with timeout-like latency.
		latency *= s.uniform(2, 10)
	}

	// Occasional latency spike (5% chance).
	if s.rng.Float64() < 0.05 {
		latency *= s.uniform(3, 8)
	}

	return round2(latency)
}

// uniform draws from [lo, hi) using the synthesizer's seeded generator.
func (s *Synthesizer) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
