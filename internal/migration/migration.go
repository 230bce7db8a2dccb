package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/avstrong/occupancy/internal/logger"
	"github.com/avstrong/occupancy/internal/occupancy"
	roomsvc "github.com/avstrong/occupancy/internal/rooms"
)

type storage interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveRooms(ctx context.Context, rooms []*occupancy.Room) error
}

type bookingFixture struct {
	Name          string         `toml:"name"`
	RenterContact string         `toml:"renter_contact"`
	StartDate     time.Time      `toml:"start_date"`
	EndDate       time.Time      `toml:"end_date"`
	PricePerNight float64        `toml:"price_per_night"`
	Metadata      map[string]any `toml:"metadata"`
}

type roomFixture struct {
	Name      string           `toml:"name"`
	BasePrice float64          `toml:"base_price"`
	Capacity  int              `toml:"capacity"`
	Bookings  []bookingFixture `toml:"bookings"`
}

type fixtures struct {
	Rooms []roomFixture `toml:"rooms"`
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func defaultRooms() []*occupancy.Room {
	return []*occupancy.Room{
		occupancy.NewRoom("Room1", []*occupancy.Booking{
			occupancy.NewBooking("Booking1", "admin@admin.com", date(2024, 7, 16), date(2024, 7, 18), 30, map[string]any{}),
			occupancy.NewBooking("Booking2", "admin@admin.com", date(2024, 7, 18), date(2024, 7, 22), 30, map[string]any{}),
		}, 1000, 10),
		occupancy.NewRoom("Room2", []*occupancy.Booking{
			occupancy.NewBooking("Booking3", "admin@admin.com", date(2024, 7, 20), date(2024, 7, 24), 30, map[string]any{}),
		}, 800, 4),
	}
}

// Load reads rooms from a TOML fixture file and validates them like registered
// rooms. An empty path yields the built-in rooms.
func Load(path string) ([]*occupancy.Room, error) {
	if path == "" {
		return defaultRooms(), nil
	}

	var f fixtures

	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures %s: %w", path, err)
	}

	rooms := make([]*occupancy.Room, 0, len(f.Rooms))

	for idx, r := range f.Rooms {
		bookings := make([]*occupancy.Booking, 0, len(r.Bookings))
		for _, b := range r.Bookings {
			bookings = append(bookings, occupancy.NewBooking(
				b.Name, b.RenterContact, b.StartDate, b.EndDate, b.PricePerNight, b.Metadata,
			))
		}

		room := occupancy.NewRoom(r.Name, bookings, r.BasePrice, r.Capacity)
		if err := roomsvc.ValidateRoom(room); err != nil {
			return nil, fmt.Errorf("fixture room %d (%q) in %s: %w", idx, r.Name, path, err)
		}

		rooms = append(rooms, room)
	}

	return rooms, nil
}

//nolint:nonamedreturns // err is inspected by the deferred commit
func Up(ctx context.Context, l *logger.Logger, storage storage, path string) (err error) {
	rooms, err := Load(path)
	if err != nil {
		return err
	}

	ctx, err = storage.BeginTransaction(ctx, "")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback migration transaction after panic %v", p)
			}

			l.LogInfo("Migration transaction has been roll backed after panic")

			panic(p)
		}

		if err != nil {
			if rbErr := storage.RollbackTransaction(ctx); rbErr != nil {
				l.LogErrorf("Could not rollback migration transaction after error %v", rbErr.Error())
			}

			l.LogInfo("Migration transaction has been roll backed after error")

			return
		}

		if err = storage.CommitTransaction(ctx); err != nil {
			err = fmt.Errorf("commit migration transaction: %w", err)

			return
		}

		l.LogInfo("Migration transaction has been committed, %d rooms seeded", len(rooms))
	}()

	if err = storage.SaveRooms(ctx, rooms); err != nil {
		return fmt.Errorf("save rooms to storage: %w", err)
	}

	return nil
}
