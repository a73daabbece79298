package dto

// AdminDashboardResponse summarizes the clinic for the admin landing page.
type AdminDashboardResponse struct {
	TotalPatients     int64 `json:"total_patients"`
	TotalDoctors      int64 `json:"total_doctors"`
	UnverifiedDoctors int64 `json:"unverified_doctors"`
	AppointmentsToday int64 `json:"appointments_today"`
	ScheduledTotal    int64 `json:"scheduled_total"`
	DoneTotal         int64 `json:"done_total"`
	CancelledTotal    int64 `json:"cancelled_total"`
}

// DoctorDashboardResponse summarizes one doctor's own workload.
type DoctorDashboardResponse struct {
	AppointmentsToday int64 `json:"appointments_today"`
	ScheduledTotal    int64 `json:"scheduled_total"`
	DoneTotal         int64 `json:"done_total"`
	CancelledTotal    int64 `json:"cancelled_total"`
}
