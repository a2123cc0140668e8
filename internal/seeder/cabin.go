package seeder

import (
	"context"
	"fmt"

	"github.com/Rana718/skyseed/internal/database"
)

// fillSeats lays out SeatRows x SeatLetters seats for every flight_data row,
// ignoring rows.
func (f *Filler) fillSeats(ctx context.Context, _ int) (int, error) {
	flights, err := f.pool(ctx, "flight_data")
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, flightID := range flights.ids {
		for row := 1; row <= SeatRows; row++ {
			for _, letter := range SeatLetters {
				err := f.store.Insert(ctx, "seats", database.Row{
					"seat_number": fmt.Sprintf("%d%s", row, letter),
					"seat_class":  SeatClass(row),
					"seat_status": SeatAvailable,
					"flight_id":   flightID,
				})
				if err != nil {
					return inserted, err
				}
				inserted++
			}
		}
	}
	return inserted, nil
}

// fillBookings re-reads customers, flights and seats on every iteration.
// Once all bookings are in, the booked seats are marked occupied with a
// single update.
func (f *Filler) fillBookings(ctx context.Context, rows int) (int, error) {
	var booked []interface{}

	inserted := 0
	for i := 0; i < rows; i++ {
		pools, err := f.pools(ctx, "customers", "flight_data", "seats")
		if err != nil {
			return inserted, err
		}
		ids, err := f.pickAll(pools, "customers", "flight_data", "seats")
		if err != nil {
			return inserted, err
		}
		booked = append(booked, ids["seats"])

		err = f.store.Insert(ctx, "bookings", database.Row{
			"flight_id":      ids["flight_data"],
			"customer_id":    ids["customers"],
			"seat_id":        ids["seats"],
			"price":          f.gen.Price(50, 1000),
			"payment_status": f.gen.Bool(),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	if err := f.occupySeats(ctx, booked); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (f *Filler) occupySeats(ctx context.Context, seatIDs []interface{}) error {
	unique := dedupe(seatIDs)
	if len(unique) == 0 {
		return nil
	}

	updated, err := f.store.UpdateWhereIn(ctx, "seats", database.Row{"seat_status": SeatOccupied}, primaryKeys["seats"], unique)
	if err != nil {
		return fmt.Errorf("failed to update seat status: %w", err)
	}
	f.log.Infow("seats occupied", "seats", len(unique), "updated", updated)
	return nil
}

func dedupe(values []interface{}) []interface{} {
	seen := make(map[interface{}]bool, len(values))
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
