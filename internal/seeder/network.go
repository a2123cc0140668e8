package seeder

import (
	"context"
	"fmt"

	"github.com/Rana718/skyseed/internal/database"
)

// flightDataPools are resolved once before any flight_data row is generated.
var flightDataPools = []string{"airlines", "flights", "airports", "flight_statuses", "aircrafts", "problems"}

func (f *Filler) fillAirlines(ctx context.Context, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		err := f.store.Insert(ctx, "airlines", database.Row{
			"airline_name": f.gen.Company() + " Air",
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// fillAirports skips a generated code that is already taken, so fewer than
// rows airports may be inserted.
func (f *Filler) fillAirports(ctx context.Context, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		code := f.gen.Letters(AirportCodeSize)

		existing, err := f.store.GetColumnValues(ctx, "airports", primaryKeys["airports"])
		if err != nil {
			return inserted, err
		}
		if contains(existing, code) {
			continue
		}

		err = f.store.Insert(ctx, "airports", database.Row{
			"airport_id":      code,
			"airport_name":    f.gen.Company() + " Airport",
			"airport_city":    f.gen.City(),
			"airport_country": f.gen.Country(),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// fillFlights inserts rows/5 flights between existing airports. Origin and
// destination are drawn independently and may coincide.
func (f *Filler) fillFlights(ctx context.Context, rows int) (int, error) {
	airports, err := f.pool(ctx, "airports")
	if err != nil {
		return 0, err
	}

	now := f.now()
	yearAgo := now.AddDate(-1, 0, 0)

	inserted := 0
	for i := 0; i < rows/FlightsDivisor; i++ {
		origin, err := airports.pick(f.gen)
		if err != nil {
			return inserted, err
		}
		destination, err := airports.pick(f.gen)
		if err != nil {
			return inserted, err
		}

		err = f.store.Insert(ctx, "flights", database.Row{
			"flight_number": FlightNumber(f.gen),
			"origin":        origin,
			"destination":   destination,
			"date":          f.gen.DateBetween(yearAgo, now).Format(dateLayout),
			"time":          f.gen.TimeBetween(yearAgo, now).Format(dateTimeLayout),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// FlightNumber is two uppercase letters followed by four digits, e.g. "KL1234".
func FlightNumber(g *DataGenerator) string {
	return fmt.Sprintf("%s%d", g.Letters(2), g.FixedDigits(4))
}

// fillFlightStatuses inserts every status once and commits once.
func (f *Filler) fillFlightStatuses(ctx context.Context, _ int) (int, error) {
	return f.insertCatalog(ctx, "flight_statuses", "flight_status_type", FlightStatuses)
}

// fillProblems inserts every problem type once and commits once.
func (f *Filler) fillProblems(ctx context.Context, _ int) (int, error) {
	return f.insertCatalog(ctx, "problems", "problem_type", ProblemTypes)
}

func (f *Filler) insertCatalog(ctx context.Context, table, column string, values []string) (int, error) {
	rows := make([]database.Row, 0, len(values))
	for _, value := range values {
		rows = append(rows, database.Row{column: value})
	}
	if err := f.store.InsertAll(ctx, table, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// fillFlightData always generates FlightDataRows rows. Passenger counts are
// derived from the chosen aircraft's capacity.
func (f *Filler) fillFlightData(ctx context.Context, _ int) (int, error) {
	pools, err := f.pools(ctx, flightDataPools...)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := 0; i < FlightDataRows; i++ {
		ids, err := f.pickAll(pools, "aircrafts", "flights", "airlines", "flight_statuses", "problems")
		if err != nil {
			return inserted, err
		}

		capacity, err := f.store.LookupInt(ctx, "aircrafts", "aircraft_capacity", primaryKeys["aircrafts"], ids["aircrafts"])
		if err != nil {
			return inserted, err
		}
		passengers, available := Seating(capacity)

		err = f.store.Insert(ctx, "flight_data", database.Row{
			"flight_number":                ids["flights"],
			"aircraft_registration_number": ids["aircrafts"],
			"airline_id":                   ids["airlines"],
			"flight_status_id":             ids["flight_statuses"],
			"problem_id":                   ids["problems"],
			"number_of_passengers":         passengers,
			"number_of_cabin_crew":         f.gen.FixedDigits(1),
			"number_of_flight_crew":        f.gen.FixedDigits(1),
			"available_seating":            available,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// Seating books 90% of capacity (rounded down) and leaves the rest available.
func Seating(capacity int) (passengers, available int) {
	passengers = capacity * 9 / 10
	return passengers, capacity - passengers
}

func contains(values []interface{}, want interface{}) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
