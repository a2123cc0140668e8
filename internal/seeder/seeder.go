package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type fillFunc func(f *Filler, ctx context.Context, rows int) (int, error)

type routine struct {
	fill      fillFunc
	dependsOn []string
}

// routines is the dispatch table: one generation routine per table, plus the
// tables each routine reads ids from.
var routines = map[string]routine{
	"customers":          {fill: (*Filler).fillCustomers},
	"airlines":           {fill: (*Filler).fillAirlines},
	"airports":           {fill: (*Filler).fillAirports},
	"flights":            {fill: (*Filler).fillFlights, dependsOn: []string{"airports"}},
	"reporteurs":         {fill: (*Filler).fillReporteurs},
	"aircrafts":          {fill: (*Filler).fillAircrafts},
	"flight_statuses":    {fill: (*Filler).fillFlightStatuses},
	"problems":           {fill: (*Filler).fillProblems},
	"flight_data":        {fill: (*Filler).fillFlightData, dependsOn: flightDataPools},
	"seats":              {fill: (*Filler).fillSeats, dependsOn: []string{"flight_data"}},
	"bookings":           {fill: (*Filler).fillBookings, dependsOn: []string{"customers", "flight_data", "seats"}},
	"subsystems":         {fill: (*Filler).fillSubsystems},
	"maintenance_types":  {fill: (*Filler).fillMaintenanceTypes},
	"maintenance_events": {fill: (*Filler).fillMaintenanceEvents, dependsOn: []string{"aircrafts", "airports", "subsystems", "maintenance_types"}},
	"aircraft_slots":     {fill: (*Filler).fillAircraftSlots, dependsOn: []string{"aircrafts", "maintenance_events"}},
	"work_orders":        {fill: (*Filler).fillWorkOrders, dependsOn: []string{"aircrafts", "maintenance_events", "airports", "reporteurs"}},
}

// Tables returns the names of every table with a fill routine.
func Tables() []string {
	names := make([]string, 0, len(routines))
	for name := range routines {
		names = append(names, name)
	}
	return sortedCopy(names)
}

func IsRegistered(table string) bool {
	_, ok := routines[table]
	return ok
}

// Filler dispatches table names to their generation routines.
type Filler struct {
	store Store
	gen   *DataGenerator
	log   *zap.SugaredLogger
	now   func() time.Time
}

func New(store Store, gen *DataGenerator, log *zap.SugaredLogger) *Filler {
	if gen == nil {
		gen = NewDataGenerator(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Filler{
		store: store,
		gen:   gen,
		log:   log,
		now:   time.Now,
	}
}

// Fill runs the routine registered for table. The returned error is only set
// for an unregistered table; database failures end up in Report.Err.
// rows <= 0 means DefaultRows.
func (f *Filler) Fill(ctx context.Context, table string, rows int) (Report, error) {
	r, ok := routines[table]
	if !ok {
		return Report{Table: table}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	started := time.Now()
	inserted, err := r.fill(f, ctx, rows)
	report := Report{
		Table:     table,
		Requested: rows,
		Inserted:  inserted,
		Duration:  time.Since(started),
		Err:       err,
	}

	if err != nil {
		f.log.Errorw("can not fill table", "table", table, "inserted", inserted, "error", err)
	} else {
		f.log.Infow("filled table", "table", table, "requested", rows, "inserted", inserted, "duration", report.Duration)
	}
	return report, nil
}

// Run validates order against the schema, then fills every table in the
// given order. A failed table is reported and the next one is still filled.
func (f *Filler) Run(ctx context.Context, order []string, rows int, observe func(Report)) ([]Report, error) {
	existing, err := f.store.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	if err := Validate(order, existing); err != nil {
		return nil, err
	}

	for _, warning := range CheckOrder(order) {
		f.log.Warnw("fill order", "warning", warning)
	}

	reports := make([]Report, 0, len(order))
	for _, table := range order {
		report, err := f.Fill(ctx, table, rows)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
		if observe != nil {
			observe(report)
		}
	}
	return reports, nil
}

// Validate requires every table in order to have a routine and to exist in
// the schema.
func Validate(order, existing []string) error {
	present := make(map[string]bool, len(existing))
	for _, table := range existing {
		present[table] = true
	}

	var unknown, missing []string
	for _, table := range order {
		if !IsRegistered(table) {
			unknown = append(unknown, table)
		} else if !present[table] {
			missing = append(missing, table)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTable, strings.Join(unknown, ", "))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTable, strings.Join(missing, ", "))
	}
	return nil
}

type idPool struct {
	table  string
	column string
	ids    []interface{}
}

func (p idPool) pick(g *DataGenerator) (interface{}, error) {
	if len(p.ids) == 0 {
		return nil, fmt.Errorf("%w: %s.%s is empty", ErrEmptyPool, p.table, p.column)
	}
	return g.Pick(p.ids), nil
}

// pool reads the current primary keys of table.
func (f *Filler) pool(ctx context.Context, table string) (idPool, error) {
	column := primaryKeys[table]
	ids, err := f.store.GetColumnValues(ctx, table, column)
	if err != nil {
		return idPool{}, err
	}
	return idPool{table: table, column: column, ids: ids}, nil
}

// pools resolves several tables at once, keyed by table name.
func (f *Filler) pools(ctx context.Context, tables ...string) (map[string]idPool, error) {
	resolved := make(map[string]idPool, len(tables))
	for _, table := range tables {
		p, err := f.pool(ctx, table)
		if err != nil {
			return nil, err
		}
		resolved[table] = p
	}
	return resolved, nil
}

// pickAll draws one id from each named pool.
func (f *Filler) pickAll(pools map[string]idPool, tables ...string) (map[string]interface{}, error) {
	picked := make(map[string]interface{}, len(tables))
	for _, table := range tables {
		id, err := pools[table].pick(f.gen)
		if err != nil {
			return nil, err
		}
		picked[table] = id
	}
	return picked, nil
}
