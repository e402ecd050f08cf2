package program

import "time"

func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

func (handler *Handler) SetNow(now func() time.Time) {
	handler.now = now
}
