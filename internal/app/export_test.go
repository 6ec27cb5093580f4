package app

// SetClock overrides time.Now in tests.
func (s *MoodService) SetClock(c Clock)      { s.now = c }
func (s *FailureService) SetClock(c Clock)   { s.now = c }
func (s *SessionService) SetClock(c Clock)   { s.now = c }
func (s *AnalyticsService) SetClock(c Clock) { s.now = c }
