package models

// TimeRange is a single open window within a day, 24h "HH:MM" bounds.
type TimeRange struct {
	Start string `bson:"start" json:"start" binding:"required"`
	End   string `bson:"end" json:"end" binding:"required"`
}

// DayAvailability holds the open ranges for one weekday of the recurring
// weekly template.
type DayAvailability struct {
	Day    Weekday     `bson:"day" json:"day" binding:"required"`
	Ranges []TimeRange `bson:"ranges" json:"ranges"`
}

// Service is one entry of a business's catalog. Duration drives end-time and
// calendar-event-length computation.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name" binding:"required"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes" binding:"required,gt=0"`
	Price           float64 `bson:"price,omitempty" json:"price,omitempty"`
	MaxCapacity     int     `bson:"maxCapacity" json:"maxCapacity"`
}

// CalendarSettings is the optional external-calendar linkage of a business.
type CalendarSettings struct {
	Enabled    bool   `bson:"enabled" json:"enabled"`
	CalendarID string `bson:"calendarId" json:"calendarId"`
}

// Business is the tenant record: catalog, weekly availability template and
// calendar linkage, owned by one account holder.
type Business struct {
	ID                 string            `bson:"id" json:"id"`
	OwnerID            string            `bson:"ownerId" json:"ownerId"`
	Subdomain          string            `bson:"subdomain" json:"subdomain"`
	Name               string            `bson:"name" json:"name"`
	Description        string            `bson:"description,omitempty" json:"description,omitempty"`
	ContactEmail       string            `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone       string            `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Services           []Service         `bson:"services" json:"services"`
	WeeklyAvailability []DayAvailability `bson:"weeklyAvailability" json:"weeklyAvailability"`
	Calendar           CalendarSettings  `bson:"calendar" json:"calendar"`
}

// ServiceByName finds a catalog entry by its display name.
func (b *Business) ServiceByName(name string) (Service, bool) {
	for _, s := range b.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// RangesFor returns the open ranges of the template for the given weekday.
func (b *Business) RangesFor(day Weekday) []TimeRange {
	for _, d := range b.WeeklyAvailability {
		if d.Day == day {
			return d.Ranges
		}
	}
	return nil
}

// Slot is the resolver's output unit: one template range with its booked flag
// for a concrete date.
type Slot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}
