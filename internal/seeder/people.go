package seeder

import (
	"context"

	"github.com/Rana718/skyseed/internal/database"
)

const customerEmailDomain = "google.com"

func (f *Filler) fillCustomers(ctx context.Context, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		err := f.store.Insert(ctx, "customers", database.Row{
			"name":         f.gen.Name(),
			"email":        f.gen.Email(customerEmailDomain),
			"phone_number": f.gen.Phone(),
			"address":      f.gen.Address(),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (f *Filler) fillReporteurs(ctx context.Context, rows int) (int, error) {
	inserted := 0
	for i := 0; i < rows; i++ {
		err := f.store.Insert(ctx, "reporteurs", database.Row{
			"reporteur_class": f.gen.OneOf(ReporteurClasses),
			"reporteur_name":  f.gen.Name(),
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
