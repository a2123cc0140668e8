package seeder

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// DataGenerator produces the plausible values the fill routines need.
type DataGenerator struct {
	faker *gofakeit.Faker
}

// NewDataGenerator returns a generator; seed 0 picks a random seed.
func NewDataGenerator(seed uint64) *DataGenerator {
	return &DataGenerator{faker: gofakeit.New(seed)}
}

// Between returns an int in [min, max].
func (g *DataGenerator) Between(min, max int) int {
	if max <= min {
		return min
	}
	return g.faker.IntRange(min, max)
}

func (g *DataGenerator) OneOf(values []string) string {
	return values[g.Between(0, len(values)-1)]
}

func (g *DataGenerator) Pick(values []interface{}) interface{} {
	return values[g.Between(0, len(values)-1)]
}

func (g *DataGenerator) Bool() bool {
	return g.faker.Bool()
}

func (g *DataGenerator) Name() string {
	return g.faker.Name()
}

func (g *DataGenerator) Email(domain string) string {
	return fmt.Sprintf("%s@%s", strings.ToLower(g.faker.Username()), domain)
}

func (g *DataGenerator) Phone() string {
	return g.faker.PhoneFormatted()
}

func (g *DataGenerator) Address() string {
	return g.faker.Address().Address
}

func (g *DataGenerator) Company() string {
	return g.faker.Company()
}

func (g *DataGenerator) City() string {
	return g.faker.City()
}

func (g *DataGenerator) Country() string {
	return g.faker.Country()
}

// Letters returns n random uppercase ASCII letters.
func (g *DataGenerator) Letters(n int) string {
	return strings.ToUpper(g.faker.Lexify(strings.Repeat("?", n)))
}

// FixedDigits returns a number with exactly n digits (no leading zero).
func (g *DataGenerator) FixedDigits(n int) int {
	low := int(math.Pow10(n - 1))
	return g.Between(low, low*10-1)
}

// Price returns a value in [min, max] rounded to cents.
func (g *DataGenerator) Price(min, max float64) float64 {
	return math.Round(g.faker.Float64Range(min, max)*100) / 100
}

// DateBetween returns a calendar day in [start, end], both truncated to the day.
func (g *DataGenerator) DateBetween(start, end time.Time) time.Time {
	start, end = truncateDay(start), truncateDay(end)
	if !end.After(start) {
		return start
	}
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.Between(0, days))
}

// TimeBetween returns an instant in [start, end] with second precision.
func (g *DataGenerator) TimeBetween(start, end time.Time) time.Time {
	if !end.After(start) {
		return start.Truncate(time.Second)
	}
	return g.faker.DateRange(start, end).Truncate(time.Second)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
