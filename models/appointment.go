package models

import "time"

// AppointmentStatus is the appointment lifecycle state.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Customer identifies who the appointment is for.
type Customer struct {
	Name  string `bson:"name" json:"name" binding:"required"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Appointment is a booking committed by the guard. StartTime is a naive local
// "2006-01-02T15:04" value interpreted in the business's calendar timezone
// only at sync time. Appointments are never deleted, only marked cancelled.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`
	BusinessID  string            `bson:"businessId" json:"businessId"`
	Customer    Customer          `bson:"customer" json:"customer"`
	StartTime   string            `bson:"startTime" json:"startTime"`
	ServiceName string            `bson:"serviceName" json:"serviceName"`
	Status      AppointmentStatus `bson:"status" json:"status"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
	// ExternalCalendarEventID is set once the calendar mirror exists.
	ExternalCalendarEventID string    `bson:"externalCalendarEventId,omitempty" json:"externalCalendarEventId,omitempty"`
	CreatedAt               time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Date returns the "2006-01-02" component of StartTime.
func (a *Appointment) Date() string {
	if len(a.StartTime) < 10 {
		return ""
	}
	return a.StartTime[:10]
}

// Time returns the "15:04" component of StartTime.
func (a *Appointment) Time() string {
	if len(a.StartTime) < 16 {
		return ""
	}
	return a.StartTime[11:16]
}
