package model

import "time"

// Role mirrors the role enumeration owned by the identity service.
type Role int

const (
	RoleAdmin    Role = 0
	RoleClient   Role = 1
	RoleProvider Role = 2
	RoleHybrid   Role = 3
)

const StatusActive = "active"

type User struct {
	ID         int64
	GivenNames string
	Surname    string
	Email      string
	Role       Role
	Status     string
	CreatedAt  time.Time
}

// CanProvide reports whether the user may publish availability and
// accept/reject appointments.
func (u *User) CanProvide() bool {
	return u.Role == RoleProvider || u.Role == RoleHybrid
}

func (u *User) Active() bool {
	return u.Status == StatusActive
}

type AvailabilityBlock struct {
	ID         int64
	ProviderID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Blocked    bool // true = block-out, false = working block
	CreatedAt  time.Time
}

type AppointmentStatus string

const (
	AppointmentPending  AppointmentStatus = "pending"
	AppointmentAccepted AppointmentStatus = "accepted"
	AppointmentRejected AppointmentStatus = "rejected"
)

type Appointment struct {
	ID          int64
	ClientID    int64
	ProviderID  int64
	StartsAt    time.Time
	DurationMin int
	Details     string
	Status      AppointmentStatus
	JobID       *int64
	RatingID    *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// End is the exclusive end of the appointment's occupied interval.
func (a *Appointment) End() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMin) * time.Minute)
}

// AppointmentDetail is an appointment joined with both parties' display names.
type AppointmentDetail struct {
	Appointment
	ClientName   string
	ProviderName string
}

type Conversation struct {
	ID        int64
	UserA     int64 // smaller user id of the pair
	UserB     int64 // larger user id of the pair
	CreatedAt time.Time
}
