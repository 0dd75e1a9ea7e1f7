package models

// Metric names shown on the dashboard.
const (
	MetricTotalPatients     = "Total Patients"
	MetricBedsOccupied      = "Beds Occupied"
	MetricBedsAvailable     = "Beds Available"
	MetricAppointmentsToday = "Appointments Today"
	MetricDoctorsOnDuty     = "Doctors On Duty"
	MetricNursesOnDuty      = "Nurses On Duty"
	MetricLabTests          = "Lab Tests In Catalog"
	MetricMedications       = "Medications In Catalog"
	MetricICUOccupancy      = "ICU Occupancy"
	MetricEmergencyCases    = "Emergency Cases"
	MetricRevenueThisMonth  = "Revenue This Month"
	MetricPendingBills      = "Pending Bills"
)

// Metric is one dashboard figure. Available is false when no table backs it,
// in which case Value is always zero.
type Metric struct {
	Name      string  `json:"metric_name"`
	Value     float64 `json:"metric_value"`
	Available bool    `json:"available"`
}

// DashboardCounts are the raw figures the dashboard metrics derive from.
type DashboardCounts struct {
	Patients          int64
	BedsOccupied      int64
	BedsAvailable     int64
	AppointmentsToday int64
	DoctorsOnDuty     int64
	NursesOnDuty      int64
	LabTests          int64
	Medications       int64
	ICUBeds           int64
	ICUBedsOccupied   int64
}
