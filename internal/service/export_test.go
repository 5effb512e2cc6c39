package service

import "time"

func (s *Auth) SetClock(now func() time.Time) {
	s.now = now
}

func (s *PatientSync) SetClock(now func() time.Time) {
	s.now = now
}
