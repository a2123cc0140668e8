package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/Rana718/skyseed/internal/database"
)

const DefaultRows = 100

var (
	ErrUnknownTable = errors.New("no fill routine registered for table")
	ErrMissingTable = errors.New("table not found in schema")
	ErrEmptyPool    = errors.New("no rows to reference")
)

// Store is the part of the database inspector the fill routines use.
type Store interface {
	ListTables(ctx context.Context) ([]string, error)
	GetColumnValues(ctx context.Context, table, column string) ([]interface{}, error)
	LookupInt(ctx context.Context, table, column, keyColumn string, key interface{}) (int, error)
	Insert(ctx context.Context, table string, row database.Row) error
	InsertAll(ctx context.Context, table string, rows []database.Row) error
	UpdateWhereIn(ctx context.Context, table string, set database.Row, column string, values []interface{}) (int64, error)
}

// Report is the outcome of filling one table. A non-nil Err means the fill
// stopped early; the Inserted rows were committed and stay.
type Report struct {
	Table     string
	Requested int
	Inserted  int
	Duration  time.Duration
	Err       error
}

func (r Report) OK() bool {
	return r.Err == nil
}

// primaryKeys names the column foreign keys reference, per table.
var primaryKeys = map[string]string{
	"customers":          "customer_id",
	"airlines":           "airline_id",
	"airports":           "airport_id",
	"flights":            "flight_number",
	"reporteurs":         "reporteur_id",
	"aircrafts":          "aircraft_registration_number",
	"flight_statuses":    "flight_status_id",
	"problems":           "problem_id",
	"flight_data":        "flight_id",
	"seats":              "seat_id",
	"subsystems":         "subsystem_id",
	"maintenance_types":  "maintenance_type_id",
	"maintenance_events": "maintenance_id",
}

var (
	AircraftTypes    = []string{"Boeing 737", "Airbus A320", "Boeing 777", "Airbus A350"}
	ReporteurClasses = []string{"Steward", "Pilot", "Mechanic"}
	FlightStatuses   = []string{"Cancelled", "Delayed", "On-time"}
	ProblemTypes     = []string{
		"Engine Failure",
		"Avionics Issue",
		"Fuel System Leak",
		"Hydraulic Failure",
		"Tire Damage",
		"Wing Deformity",
		"Sensor Malfunction",
		"Landing Gear Issue",
		"Cabin Pressure Problem",
		"Electrical System Issue",
	}
	SubsystemTypes       = []string{"Engine", "Avionics", "Hydraulics", "Landing Gear", "Fuel System", "Electrical System"}
	MaintenanceTypeNames = []string{"Routine Check", "Engine Repair", "Scheduled Maintenance", "Emergency Repair", "Software Update"}
	SlotTypes            = []string{"Maintenance", "Cleaning", "Inspection", "Repair"}
	SeatLetters          = []string{"A", "B", "C", "D", "E", "F"}
)

const (
	SeatRows        = 40
	SeatAvailable   = "Available"
	SeatOccupied    = "Occupied"
	AircraftSeats   = 300
	FlightDataRows  = 100
	SubsystemRows   = 6
	FlightsDivisor  = 5
	AirportCodeSize = 3
)

// SeatClass maps a seat row number to its cabin class.
func SeatClass(row int) string {
	switch {
	case row <= 3:
		return "Business"
	case row <= 6:
		return "First Class"
	default:
		return "Economy"
	}
}
