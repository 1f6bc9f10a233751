package holiday

import "time"

type Holiday struct {
	ID   string
	Date time.Time
	Name string
}

// Calendar is a set of holiday dates keyed by "2006-01-02".
type Calendar map[string]struct{}

func NewCalendar(holidays []Holiday) Calendar {
	c := make(Calendar, len(holidays))
	for _, h := range holidays {
		c[h.Date.Format("2006-01-02")] = struct{}{}
	}
	return c
}

// IsHoliday reports whether date is a listed holiday or falls on a weekend.
func (c Calendar) IsHoliday(date time.Time) bool {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}
	_, ok := c[date.Format("2006-01-02")]
	return ok
}
