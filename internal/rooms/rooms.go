package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/avstrong/occupancy/internal/logger"
	"github.com/avstrong/occupancy/internal/occupancy"
)

type storageReader interface {
	GetRooms(ctx context.Context, names []string) ([]*occupancy.Room, error)
	ListRooms(ctx context.Context) ([]*occupancy.Room, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveRooms(ctx context.Context, rooms []*occupancy.Room) error
}

type storage interface {
	storageReader
	storageWriter
}

type Manager struct {
	l       *logger.Logger
	storage storage
}

func New(l *logger.Logger, storage storage) *Manager {
	return &Manager{
		l:       l,
		storage: storage,
	}
}

// ValidateRoom checks the fields registration requires. It returns an *InputError
// keyed by the JSON field names.
func ValidateRoom(room *occupancy.Room) error {
	inputErr := newInputError()

	if room.Name == "" {
		inputErr.addError("name", "provide room name")
	}

	if room.Capacity < 0 {
		inputErr.addError("capacity", "capacity must not be negative")
	}

	for idx, b := range room.Bookings {
		field := fmt.Sprintf("bookings[%d]", idx)

		if b == nil {
			inputErr.addError(field, "provide booking")

			continue
		}

		if b.Name == "" {
			inputErr.addError(field+".name", "provide booking name")
		}

		if b.StartDate.IsZero() {
			inputErr.addError(field+".start_date", "provide date as YYYY-MM-DD")
		}

		if b.EndDate.IsZero() {
			inputErr.addError(field+".end_date", "provide date as YYYY-MM-DD")
		}

		if !b.StartDate.IsZero() && !b.EndDate.IsZero() && occupancy.Day(b.StartDate).After(occupancy.Day(b.EndDate)) {
			inputErr.addError(field+".start_date", "start_date must not be after end_date")
		}
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// build leaves unparsable dates zero so ValidateRoom reports them.
func (in *RegisterInput) build() (*occupancy.Room, error) {
	bookings := make([]*occupancy.Booking, 0, len(in.Bookings))

	for _, b := range in.Bookings {
		start, _ := occupancy.ParseDate(b.StartDate)
		end, _ := occupancy.ParseDate(b.EndDate)

		bookings = append(bookings, occupancy.NewBooking(b.Name, b.RenterContact, start, end, b.PricePerNight, b.Metadata))
	}

	room := occupancy.NewRoom(in.Name, bookings, in.BasePrice, in.Capacity)
	if err := ValidateRoom(room); err != nil {
		return nil, err
	}

	return room, nil
}

//nolint:nonamedreturns // err is inspected by the deferred commit
func (m *Manager) RegisterRoom(ctx context.Context, input *RegisterInput) (_ *occupancy.Room, err error) {
	room, err := input.build()
	if err != nil {
		return nil, err
	}

	ctx, err = m.storage.BeginTransaction(ctx, "READ COMMITTED")
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not rollback room transaction after panic %v", p)
			}

			panic(p)
		}

		if err != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not rollback room transaction after error %v", rbErr.Error())
			}

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			m.l.LogErrorf("Could not commit room transaction, err %v", err.Error())
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	if err = m.storage.SaveRooms(ctx, []*occupancy.Room{room}); err != nil {
		return nil, fmt.Errorf("save room %s to storage: %w", room.Name, err)
	}

	m.l.LogInfo("Room %s registered with %d bookings", room.Name, len(room.Bookings))

	return room, nil
}

func (m *Manager) ListRooms(ctx context.Context) ([]*occupancy.Room, error) {
	rooms, err := m.storage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms from storage: %w", err)
	}

	return rooms, nil
}

func (m *Manager) room(ctx context.Context, name string) (*occupancy.Room, error) {
	rooms, err := m.storage.GetRooms(ctx, []string{name})
	if err != nil {
		return nil, fmt.Errorf("get room %s from storage: %w", name, err)
	}

	return rooms[0], nil
}

func (m *Manager) Occupied(ctx context.Context, name string, date time.Time) (bool, error) {
	if date.IsZero() {
		return false, occupancy.ErrDateExpected
	}

	room, err := m.room(ctx, name)
	if err != nil {
		return false, err
	}

	occupied, err := room.IsOccupied(date)
	if err != nil {
		return false, fmt.Errorf("check room %s on %s: %w", name, date.Format(time.DateOnly), err)
	}

	m.l.LogDebugf("Room %s occupied on %s: %t", name, date.Format(time.DateOnly), occupied)

	return occupied, nil
}

func (m *Manager) Occupancy(ctx context.Context, name string, from, to time.Time) (float64, error) {
	if from.IsZero() || to.IsZero() {
		return 0, occupancy.ErrDatesExpected
	}

	room, err := m.room(ctx, name)
	if err != nil {
		return 0, err
	}

	percentage, err := room.OccupancyPercentage(from, to)
	if err != nil {
		return 0, fmt.Errorf("occupancy of room %s: %w", name, err)
	}

	m.l.LogDebugf("Room %s occupancy %s..%s: %v%%", name, from.Format(time.DateOnly), to.Format(time.DateOnly), percentage)

	return percentage, nil
}

// TotalOccupancy averages occupancy over the named rooms. A nil names slice is
// rejected the same way the core rejects a nil rooms slice.
func (m *Manager) TotalOccupancy(ctx context.Context, names []string, from, to time.Time) (float64, error) {
	if names == nil {
		return 0, occupancy.ErrRoomsExpected
	}

	if from.IsZero() || to.IsZero() {
		return 0, occupancy.ErrDatesExpected
	}

	rooms, err := m.storage.GetRooms(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("get rooms from storage: %w", err)
	}

	percentage, err := occupancy.TotalOccupancyPercentage(rooms, from, to)
	if err != nil {
		return 0, fmt.Errorf("total occupancy: %w", err)
	}

	m.l.LogDebugf("Total occupancy of %d rooms %s..%s: %v%%", len(rooms), from.Format(time.DateOnly), to.Format(time.DateOnly), percentage)

	return percentage, nil
}
