package seeder

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/Rana718/skyseed/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newFiller(t *testing.T, db *testutil.DB) *Filler {
	t.Helper()
	return New(db.Inspector, NewDataGenerator(0), zaptest.NewLogger(t).Sugar())
}

func TestFillAirlines(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "airlines", 5)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, 5, report.Inserted)

	names := db.Strings(t, "SELECT airline_name FROM airlines")
	require.Len(t, names, 5)
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, " Air"), name)
		assert.NotEqual(t, " Air", name)
	}
}

func TestFillFlightsInsertsFifthOfRows(t *testing.T) {
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO airports (airport_id, airport_name) VALUES ('AAA', 'A'), ('BBB', 'B'), ('CCC', 'C')")
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "flights", 10)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 2, db.Count(t, "flights"))

	airports := []string{"AAA", "BBB", "CCC"}
	for _, origin := range db.Strings(t, "SELECT origin FROM flights") {
		assert.Contains(t, airports, origin)
	}
	for _, destination := range db.Strings(t, "SELECT destination FROM flights") {
		assert.Contains(t, airports, destination)
	}

	pattern := regexp.MustCompile(`^[A-Z]{2}[1-9][0-9]{3}$`)
	for _, number := range db.Strings(t, "SELECT flight_number FROM flights") {
		assert.Regexp(t, pattern, number)
	}
}

func TestFillFlightsWithoutAirportsFails(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "flights", 10)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.True(t, errors.Is(report.Err, ErrEmptyPool))
	assert.Zero(t, report.Inserted)
}

func TestFillAirportsDefaultsAndUniqueCodes(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "airports", 0)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, DefaultRows, report.Requested)
	assert.LessOrEqual(t, report.Inserted, DefaultRows)
	assert.Equal(t, report.Inserted, db.Count(t, "airports"))

	code := regexp.MustCompile(`^[A-Z]{3}$`)
	for _, id := range db.Strings(t, "SELECT airport_id FROM airports") {
		assert.Regexp(t, code, id)
	}
}

func TestFillAirportsSkipsTakenCode(t *testing.T) {
	db := testutil.NewSQLite(t)

	taken := NewDataGenerator(42).Letters(AirportCodeSize)
	db.Exec(t, "INSERT INTO airports (airport_id, airport_name) VALUES (?, 'Taken')", taken)

	f := New(db.Inspector, NewDataGenerator(42), zaptest.NewLogger(t).Sugar())
	report, err := f.Fill(context.Background(), "airports", 1)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)

	assert.Zero(t, report.Inserted)
	assert.Equal(t, 1, db.Count(t, "airports"))
}

func TestCategoryTables(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)
	ctx := context.Background()

	tests := []struct {
		table  string
		column string
		rows   int
		want   int
		values []string
	}{
		{table: "subsystems", column: "subsystem_type", rows: 50, want: SubsystemRows, values: SubsystemTypes},
		{table: "flight_statuses", column: "flight_status_type", rows: 50, want: len(FlightStatuses), values: FlightStatuses},
		{table: "problems", column: "problem_type", rows: 1, want: len(ProblemTypes), values: ProblemTypes},
		{table: "maintenance_types", column: "maintenance_type_name", rows: 12, want: 12, values: MaintenanceTypeNames},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			report, err := f.Fill(ctx, tt.table, tt.rows)
			require.NoError(t, err)
			require.True(t, report.OK(), "fill failed: %v", report.Err)
			assert.Equal(t, tt.want, report.Inserted)

			got := db.Strings(t, "SELECT "+tt.column+" FROM "+tt.table)
			assert.Len(t, got, tt.want)
			for _, value := range got {
				assert.Contains(t, tt.values, value)
			}
		})
	}

	assert.ElementsMatch(t, FlightStatuses, db.Strings(t, "SELECT flight_status_type FROM flight_statuses"))
	assert.ElementsMatch(t, ProblemTypes, db.Strings(t, "SELECT problem_type FROM problems"))
}

func TestFillReporteursUsesRealisticNames(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "reporteurs", 8)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)

	for _, class := range db.Strings(t, "SELECT reporteur_class FROM reporteurs") {
		assert.Contains(t, ReporteurClasses, class)
	}
	for _, name := range db.Strings(t, "SELECT reporteur_name FROM reporteurs") {
		assert.NotEmpty(t, name)
		assert.NotRegexp(t, `^name[0-9]$`, name)
	}
}

func TestFillFlightDataDerivesSeating(t *testing.T) {
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO airlines (airline_id, airline_name) VALUES (1, 'Acme Air'), (2, 'Globex Air')")
	db.Exec(t, "INSERT INTO airports (airport_id, airport_name) VALUES ('AAA', 'A')")
	db.Exec(t, "INSERT INTO flights (flight_number, origin, destination) VALUES ('AB1234', 'AAA', 'AAA'), ('CD5678', 'AAA', 'AAA')")
	db.Exec(t, "INSERT INTO flight_statuses (flight_status_id, flight_status_type) VALUES (1, 'Delayed')")
	db.Exec(t, "INSERT INTO problems (problem_id, problem_type) VALUES (1, 'Tire Damage')")
	db.Exec(t, `INSERT INTO aircrafts (aircraft_registration_number, aircraft_type, aircraft_capacity)
		VALUES (1, 'Boeing 737', 300), (2, 'Airbus A320', 157), (3, 'Boeing 777', 10)`)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "flight_data", 3)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, FlightDataRows, report.Inserted)
	assert.Equal(t, FlightDataRows, db.Count(t, "flight_data"))

	var rows []struct {
		Capacity   int    `db:"aircraft_capacity"`
		Passengers int    `db:"number_of_passengers"`
		Available  int    `db:"available_seating"`
		Flight     string `db:"flight_number"`
		Airline    int    `db:"airline_id"`
		CabinCrew  int    `db:"number_of_cabin_crew"`
	}
	err = db.Raw.Select(&rows, `SELECT a.aircraft_capacity, d.number_of_passengers, d.available_seating,
		d.flight_number, d.airline_id, d.number_of_cabin_crew
		FROM flight_data d JOIN aircrafts a ON a.aircraft_registration_number = d.aircraft_registration_number`)
	require.NoError(t, err)
	require.Len(t, rows, FlightDataRows)

	for _, row := range rows {
		assert.Equal(t, row.Capacity*9/10, row.Passengers)
		assert.Equal(t, row.Capacity-row.Passengers, row.Available)
		assert.Contains(t, []string{"AB1234", "CD5678"}, row.Flight)
		assert.Contains(t, []int{1, 2}, row.Airline)
		assert.True(t, row.CabinCrew >= 1 && row.CabinCrew <= 9)
	}
}

func TestSeating(t *testing.T) {
	tests := []struct {
		capacity, passengers, available int
	}{
		{300, 270, 30},
		{157, 141, 16},
		{10, 9, 1},
		{1, 0, 1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		passengers, available := Seating(tt.capacity)
		assert.Equal(t, tt.passengers, passengers, "capacity %d", tt.capacity)
		assert.Equal(t, tt.available, available, "capacity %d", tt.capacity)
	}
}

func TestFillSeatsLaysOutEveryFlight(t *testing.T) {
	db := testutil.NewSQLite(t)
	db.Exec(t, `INSERT INTO flight_data (flight_id, flight_number, aircraft_registration_number, airline_id, flight_status_id)
		VALUES (1, 'AB1234', 1, 1, 1), (2, 'CD5678', 1, 1, 1)`)
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "seats", 3)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, 480, report.Inserted)

	var perFlight []int
	require.NoError(t, db.Raw.Select(&perFlight, "SELECT COUNT(*) FROM seats GROUP BY flight_id ORDER BY flight_id"))
	assert.Equal(t, []int{240, 240}, perFlight)

	var seats []struct {
		Number string `db:"seat_number"`
		Class  string `db:"seat_class"`
		Status string `db:"seat_status"`
	}
	require.NoError(t, db.Raw.Select(&seats, "SELECT seat_number, seat_class, seat_status FROM seats WHERE flight_id = 1"))

	numbers := make(map[string]bool)
	for _, seat := range seats {
		numbers[seat.Number] = true
		assert.Equal(t, SeatAvailable, seat.Status)

		row := 0
		for _, c := range seat.Number {
			if c < '0' || c > '9' {
				break
			}
			row = row*10 + int(c-'0')
		}
		switch {
		case row >= 1 && row <= 3:
			assert.Equal(t, "Business", seat.Class, seat.Number)
		case row >= 4 && row <= 6:
			assert.Equal(t, "First Class", seat.Class, seat.Number)
		case row >= 7 && row <= 40:
			assert.Equal(t, "Economy", seat.Class, seat.Number)
		default:
			t.Errorf("unexpected seat row in %s", seat.Number)
		}
	}
	assert.Len(t, numbers, 240)
	assert.True(t, numbers["1A"])
	assert.True(t, numbers["40F"])
}

func TestFillBookingsOccupiesBookedSeats(t *testing.T) {
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO customers (customer_id, name, email) VALUES (1, 'Ann', 'ann@google.com'), (2, 'Bo', 'bo@google.com')")
	db.Exec(t, `INSERT INTO flight_data (flight_id, flight_number, aircraft_registration_number, airline_id, flight_status_id)
		VALUES (1, 'AB1234', 1, 1, 1)`)
	for i := 1; i <= 20; i++ {
		db.Exec(t, "INSERT INTO seats (seat_id, seat_number, seat_class, seat_status, flight_id) VALUES (?, ?, 'Economy', 'Available', 1)", i, i)
	}
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "bookings", 6)
	require.NoError(t, err)
	require.True(t, report.OK(), "fill failed: %v", report.Err)
	assert.Equal(t, 6, db.Count(t, "bookings"))

	booked := db.Strings(t, "SELECT DISTINCT CAST(seat_id AS TEXT) FROM bookings")
	occupied := db.Strings(t, "SELECT CAST(seat_id AS TEXT) FROM seats WHERE seat_status = 'Occupied'")
	assert.ElementsMatch(t, booked, occupied)

	available := db.Count(t, "seats WHERE seat_status = 'Available'")
	assert.Equal(t, 20-len(booked), available)

	var prices []float64
	require.NoError(t, db.Raw.Select(&prices, "SELECT price FROM bookings"))
	for _, price := range prices {
		assert.True(t, price >= 50 && price <= 1000, "price %v", price)
	}
}

func TestFillBookingsWithoutSeatsFails(t *testing.T) {
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO customers (customer_id, name, email) VALUES (1, 'Ann', 'ann@google.com')")
	f := newFiller(t, db)

	report, err := f.Fill(context.Background(), "bookings", 3)
	require.NoError(t, err)
	assert.True(t, errors.Is(report.Err, ErrEmptyPool))
	assert.Zero(t, db.Count(t, "bookings"))
}

func TestFillUnknownTable(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	_, err := f.Fill(context.Background(), "passengers", 10)
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestRunContinuesAfterFailedTable(t *testing.T) {
	db := testutil.NewSQLite(t, `CREATE TRIGGER airlines_cap BEFORE INSERT ON airlines
		WHEN (SELECT COUNT(*) FROM airlines) >= 3
		BEGIN SELECT RAISE(ABORT, 'airlines full'); END;`)
	f := newFiller(t, db)

	var observed []string
	reports, err := f.Run(context.Background(), []string{"airlines", "customers"}, 5, func(r Report) {
		observed = append(observed, r.Table)
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, []string{"airlines", "customers"}, observed)

	assert.False(t, reports[0].OK())
	assert.Equal(t, 3, reports[0].Inserted)
	assert.Equal(t, 3, db.Count(t, "airlines"))

	assert.True(t, reports[1].OK(), "fill failed: %v", reports[1].Err)
	assert.Equal(t, 5, db.Count(t, "customers"))
}

func TestRunRejectsUnknownAndMissingTables(t *testing.T) {
	db := testutil.NewSQLite(t, "DROP TABLE work_orders")
	f := newFiller(t, db)
	ctx := context.Background()

	_, err := f.Run(ctx, []string{"airlines", "passengers"}, 5, nil)
	assert.True(t, errors.Is(err, ErrUnknownTable))
	assert.Zero(t, db.Count(t, "airlines"), "nothing is filled when the order is invalid")

	_, err = f.Run(ctx, []string{"airlines", "work_orders"}, 5, nil)
	assert.True(t, errors.Is(err, ErrMissingTable))
}

func TestRunFillsForeignKeysFromExistingRows(t *testing.T) {
	db := testutil.NewSQLite(t)
	f := newFiller(t, db)

	order := []string{
		"customers", "airlines", "airports", "flights", "reporteurs", "aircrafts",
		"flight_statuses", "problems", "flight_data", "subsystems", "maintenance_types",
		"maintenance_events", "aircraft_slots", "work_orders",
	}
	reports, err := f.Run(context.Background(), order, 10, nil)
	require.NoError(t, err)
	for _, r := range reports {
		require.True(t, r.OK(), "%s: %v", r.Table, r.Err)
	}

	orphans := map[string]string{
		"flight_data":        `SELECT COUNT(*) FROM flight_data d WHERE NOT EXISTS (SELECT 1 FROM flights f WHERE f.flight_number = d.flight_number)`,
		"maintenance_events": `SELECT COUNT(*) FROM maintenance_events m WHERE NOT EXISTS (SELECT 1 FROM subsystems s WHERE s.subsystem_id = m.subsystem_id)`,
		"aircraft_slots":     `SELECT COUNT(*) FROM aircraft_slots s WHERE NOT EXISTS (SELECT 1 FROM maintenance_events m WHERE m.maintenance_id = s.maintenance_id)`,
		"work_orders":        `SELECT COUNT(*) FROM work_orders w WHERE NOT EXISTS (SELECT 1 FROM reporteurs r WHERE r.reporteur_id = w.reporteur_id)`,
	}
	for table, query := range orphans {
		var n int
		require.NoError(t, db.Raw.Get(&n, query))
		assert.Zero(t, n, "orphaned rows in %s", table)
	}

	assert.Equal(t, 10, db.Count(t, "work_orders"))
	assert.Equal(t, 10, db.Count(t, "aircraft_slots"))

	var dates []struct {
		Reporting  string `db:"reporting_date"`
		Forecasted string `db:"forecasted_date"`
		Due        string `db:"due_date"`
		Execution  string `db:"execution_date"`
	}
	require.NoError(t, db.Raw.Select(&dates, "SELECT reporting_date, forecasted_date, due_date, execution_date FROM work_orders"))
	for _, d := range dates {
		assert.LessOrEqual(t, d.Reporting, d.Forecasted)
		assert.LessOrEqual(t, d.Forecasted, d.Due)
		assert.LessOrEqual(t, d.Reporting, d.Execution)
	}

	var slots []struct {
		Start string `db:"slot_start"`
		End   string `db:"slot_end"`
	}
	require.NoError(t, db.Raw.Select(&slots, "SELECT slot_start, slot_end FROM aircraft_slots"))
	for _, s := range slots {
		assert.Less(t, s.Start, s.End)
	}
}

func TestValidate(t *testing.T) {
	existing := []string{"airlines", "customers"}

	assert.NoError(t, Validate([]string{"airlines", "customers"}, existing))
	assert.True(t, errors.Is(Validate([]string{"reportuers"}, existing), ErrUnknownTable))
	assert.True(t, errors.Is(Validate([]string{"airports"}, existing), ErrMissingTable))
}

func TestEveryRegisteredTableHasPrimaryKeyForDependents(t *testing.T) {
	for _, table := range Tables() {
		for _, dep := range routines[table].dependsOn {
			_, ok := primaryKeys[dep]
			assert.True(t, ok, "%s depends on %s, which has no primary key entry", table, dep)
		}
	}
}
