package service

// SetRandPercent replaces the simulator's delta sampler so tests can
// drive deterministic price movements through Tick.
func (s *SimulatorService) SetRandPercent(fn func() float64) {
	s.randPercent = fn
}
