package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/skyseed/internal/database"
)

func (f *Filler) fillAircrafts(ctx context.Context, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		err := f.store.Insert(ctx, "aircrafts", database.Row{
			"aircraft_type":     f.gen.OneOf(AircraftTypes),
			"aircraft_company":  f.gen.Company(),
			"aircraft_capacity": AircraftSeats,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// fillSubsystems always inserts SubsystemRows rows, sampled with replacement.
func (f *Filler) fillSubsystems(ctx context.Context, _ int) (int, error) {
	return f.insertSampled(ctx, "subsystems", "subsystem_type", SubsystemTypes, SubsystemRows)
}

func (f *Filler) fillMaintenanceTypes(ctx context.Context, rows int) (int, error) {
	return f.insertSampled(ctx, "maintenance_types", "maintenance_type_name", MaintenanceTypeNames, rows)
}

func (f *Filler) insertSampled(ctx context.Context, table, column string, values []string, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		if err := f.store.Insert(ctx, table, database.Row{column: f.gen.OneOf(values)}); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (f *Filler) fillMaintenanceEvents(ctx context.Context, rows int) (int, error) {
	pools, err := f.pools(ctx, "aircrafts", "airports", "subsystems", "maintenance_types")
	if err != nil {
		return 0, err
	}

	now := f.now()

	inserted := 0
	for i := 0; i < rows; i++ {
		ids, err := f.pickAll(pools, "aircrafts", "airports", "subsystems", "maintenance_types")
		if err != nil {
			return inserted, err
		}

		err = f.store.Insert(ctx, "maintenance_events", database.Row{
			"aircraft_registration_number": ids["aircrafts"],
			"maintenance_starttime":        f.gen.TimeBetween(now.AddDate(-1, 0, 0), now).Format(dateTimeLayout),
			"duration":                     fmt.Sprintf("%d hours", f.gen.Between(1, 12)),
			"airport_id":                   ids["airports"],
			"subsystem_id":                 ids["subsystems"],
			"maintenance_type_id":          ids["maintenance_types"],
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// fillAircraftSlots books slots of one to twelve hours within the last year.
func (f *Filler) fillAircraftSlots(ctx context.Context, rows int) (int, error) {
	pools, err := f.pools(ctx, "aircrafts", "maintenance_events")
	if err != nil {
		return 0, err
	}

	now := f.now()

	inserted := 0
	for i := 0; i < rows; i++ {
		ids, err := f.pickAll(pools, "aircrafts", "maintenance_events")
		if err != nil {
			return inserted, err
		}

		start := f.gen.TimeBetween(now.AddDate(-1, 0, 0), now)
		end := start.Add(time.Duration(f.gen.Between(1, 12)) * time.Hour)

		err = f.store.Insert(ctx, "aircraft_slots", database.Row{
			"aircraft_registration_number": ids["aircrafts"],
			"slot_start":                   start.Format(dateTimeLayout),
			"slot_end":                     end.Format(dateTimeLayout),
			"slot_type":                    f.gen.OneOf(SlotTypes),
			"slot_scheduled":               f.gen.Bool(),
			"maintenance_id":               ids["maintenance_events"],
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// WorkOrderDates holds the dates of one work order. Reporting <= Forecasted
// <= Due, and Execution is never before Reporting.
type WorkOrderDates struct {
	Reporting  time.Time
	Forecasted time.Time
	Due        time.Time
	Execution  time.Time
}

// NewWorkOrderDates reports within the two years before now and schedules
// everything else up to a year after now.
func NewWorkOrderDates(g *DataGenerator, now time.Time) WorkOrderDates {
	horizon := now.AddDate(1, 0, 0)

	reporting := g.DateBetween(now.AddDate(-2, 0, 0), now)
	forecasted := g.DateBetween(reporting, horizon)
	return WorkOrderDates{
		Reporting:  reporting,
		Forecasted: forecasted,
		Due:        g.DateBetween(forecasted, horizon),
		Execution:  g.DateBetween(reporting, horizon),
	}
}

func (f *Filler) fillWorkOrders(ctx context.Context, rows int) (int, error) {
	pools, err := f.pools(ctx, "aircrafts", "maintenance_events", "airports", "reporteurs")
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := 0; i < rows; i++ {
		ids, err := f.pickAll(pools, "aircrafts", "maintenance_events", "airports", "reporteurs")
		if err != nil {
			return inserted, err
		}

		dates := NewWorkOrderDates(f.gen, f.now())

		err = f.store.Insert(ctx, "work_orders", database.Row{
			"aircraft_registration_number": ids["aircrafts"],
			"maintenance_id":               ids["maintenance_events"],
			"airport_id":                   ids["airports"],
			"execution_date":               dates.Execution.Format(dateLayout),
			"scheduled":                    f.gen.Bool(),
			"forecasted_date":              dates.Forecasted.Format(dateLayout),
			"forecasted_manhours":          f.gen.FixedDigits(1),
			"frequency":                    f.gen.FixedDigits(1),
			"reporteur_id":                 ids["reporteurs"],
			"due_date":                     dates.Due.Format(dateLayout),
			"reporting_date":               dates.Reporting.Format(dateLayout),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
