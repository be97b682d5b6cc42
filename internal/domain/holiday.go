package domain

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
)

type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Recurring bool // repeats every year on the same month and day
	CreatedAt time.Time
}

// Matches reports whether the holiday falls on d.
func (h *Holiday) Matches(d time.Time) bool {
	if h.Recurring {
		_, hm, hd := h.Date.Date()
		_, dm, dd := d.Date()
		return hm == dm && hd == dd
	}
	return dateutil.IsSameDay(h.Date, d)
}
