package calendar

import "time"

// SetNow fija el reloj del servicio (solo tests).
func SetNow(s *Service, now func() time.Time) { s.now = now }
