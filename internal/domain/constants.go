package domain

// Roles
const (
	RoleCustomer = "customer"
	RoleDoctor   = "doctor"
	RoleAdmin    = "admin"
)

// Appointment Statuses
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusRejected  = "rejected"
)

var AppointmentStatuses = []string{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusRejected,
}

// IsAppointmentStatus reports whether s is one of AppointmentStatuses.
func IsAppointmentStatus(s string) bool {
	for _, st := range AppointmentStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Pagination defaults used when the caller passes zero values.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
