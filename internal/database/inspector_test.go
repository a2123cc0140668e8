package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rana718/skyseed/internal/database"
	"github.com/Rana718/skyseed/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	db := testutil.NewSQLite(t)

	tables, err := db.Inspector.ListTables(context.Background())
	require.NoError(t, err)

	assert.Len(t, tables, 16)
	assert.Contains(t, tables, "flight_data")
	assert.Contains(t, tables, "work_orders")
	for _, table := range tables {
		assert.NotContains(t, table, "sqlite_")
	}
}

func TestInsertAndGetColumnValues(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)

	for _, code := range []string{"AAA", "BBB"} {
		err := db.Inspector.Insert(ctx, "airports", database.Row{
			"airport_id":   code,
			"airport_name": code + " Airport",
		})
		require.NoError(t, err)
	}

	ids, err := db.Inspector.GetColumnValues(ctx, "airports", "airport_id")
	require.NoError(t, err)
	assert.ElementsMatch(t, []interface{}{"AAA", "BBB"}, ids)
}

func TestGetAllRows(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO airlines (airline_name) VALUES ('Acme Air'), ('Globex Air')")

	rows, err := db.Inspector.GetAllRows(ctx, "airlines")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme Air", rows[0]["airline_name"])
	assert.Contains(t, rows[0], "airline_id")
}

func TestInsertAllCommitsOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)

	err := db.Inspector.InsertAll(ctx, "problems", []database.Row{
		{"problem_type": "Engine Failure"},
		{"problem_type": "Tire Damage"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, db.Count(t, "problems"))

	// A failing row rolls back the whole batch.
	err = db.Inspector.InsertAll(ctx, "problems", []database.Row{
		{"problem_type": "Wing Deformity"},
		{"no_such_column": "x"},
	})
	require.Error(t, err)
	assert.Equal(t, 2, db.Count(t, "problems"))
}

func TestLookupInt(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO aircrafts (aircraft_registration_number, aircraft_type, aircraft_capacity) VALUES (7, 'Boeing 777', 312)")

	capacity, err := db.Inspector.LookupInt(ctx, "aircrafts", "aircraft_capacity", "aircraft_registration_number", int64(7))
	require.NoError(t, err)
	assert.Equal(t, 312, capacity)

	_, err = db.Inspector.LookupInt(ctx, "aircrafts", "aircraft_capacity", "aircraft_registration_number", int64(8))
	assert.Error(t, err)
}

func TestUpdateWhereIn(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)
	db.Exec(t, "INSERT INTO flight_statuses (flight_status_type) VALUES ('On-time')")
	db.Exec(t, "INSERT INTO flight_data (flight_id, flight_number, aircraft_registration_number, airline_id, flight_status_id) VALUES (1, 'AB1234', 1, 1, 1)")
	for i := 0; i < 4; i++ {
		db.Exec(t, "INSERT INTO seats (seat_number, seat_class, seat_status, flight_id) VALUES (?, 'Economy', 'Available', 1)", i)
	}

	affected, err := db.Inspector.UpdateWhereIn(ctx, "seats",
		database.Row{"seat_status": "Occupied"}, "seat_id", []interface{}{int64(1), int64(3), int64(3)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	statuses := db.Strings(t, "SELECT seat_status FROM seats ORDER BY seat_id")
	assert.Equal(t, []string{"Occupied", "Available", "Occupied", "Available"}, statuses)

	affected, err = db.Inspector.UpdateWhereIn(ctx, "seats", database.Row{"seat_status": "Occupied"}, "seat_id", nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestRejectsInvalidIdentifiers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)

	_, err := db.Inspector.GetColumnValues(ctx, "airports; DROP TABLE airports", "airport_id")
	assert.True(t, errors.Is(err, database.ErrInvalidIdentifier))

	err = db.Inspector.Insert(ctx, "airlines", database.Row{"airline_name = 1 --": "x"})
	assert.True(t, errors.Is(err, database.ErrInvalidIdentifier))
}

func TestDialectFor(t *testing.T) {
	for _, provider := range []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"} {
		_, err := database.DialectFor(provider)
		assert.NoError(t, err, provider)
	}

	_, err := database.DialectFor("oracle")
	assert.Error(t, err)
}
