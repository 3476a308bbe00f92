package domain

// ChargeType is the single-letter broker invoice charge classification.
type ChargeType string

const (
	ChargeTypeBrokerage     ChargeType = "R"
	ChargeTypeOther         ChargeType = "O"
	ChargeTypeContainer     ChargeType = "C"
	ChargeTypeInlandFreight ChargeType = "T"
	ChargeTypeIntlFreight   ChargeType = "F"
)

// ChargeCodeIntlFreight marks broker charges that may be tied to a specific
// commercial invoice via their free-text description.
const ChargeCodeIntlFreight = "0600"

// TransportMode codes as filed on the entry summary.
const (
	TransportModeOcean = "11"
	TransportModeAir   = "40"
	TransportModeTruck = "30"
	TransportModeRail  = "20"
)

// ScheduleFrequency defines how often a scheduled report recurs.
type ScheduleFrequency string

const (
	FrequencyDaily   ScheduleFrequency = "daily"
	FrequencyWeekly  ScheduleFrequency = "weekly"
	FrequencyMonthly ScheduleFrequency = "monthly"
)

// ValidFrequencies lists the accepted schedule frequencies.
var ValidFrequencies = map[ScheduleFrequency]bool{
	FrequencyDaily:   true,
	FrequencyWeekly:  true,
	FrequencyMonthly: true,
}

// RunStatus is the lifecycle state of a scheduled report run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// UserRole defines the role carried in service tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)
