package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/avstrong/occupancy/internal/logger"
	"github.com/avstrong/occupancy/internal/occupancy"
	"github.com/avstrong/occupancy/internal/rooms"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id                string
	roomModifications map[string]*occupancy.Room
}

type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	rooms        map[string]*occupancy.Room
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		rooms:        make(map[string]*occupancy.Room),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:                trxID,
		roomModifications: make(map[string]*occupancy.Room),
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for name := range trx.roomModifications {
		if _, exists := db.rooms[name]; exists {
			delete(db.transactions, trx.id)

			return fmt.Errorf("room %s: %w", name, rooms.ErrRoomExists)
		}
	}

	for name, room := range trx.roomModifications {
		db.rooms[name] = room
	}

	delete(db.transactions, trx.id)

	if db.l != nil {
		db.l.LogDebugf("Transaction %s committed %d rooms", trx.id, len(trx.roomModifications))
	}

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	delete(db.transactions, trx.id)

	return nil
}

// SaveRooms stages rooms in the transaction from ctx. Nothing is visible to
// readers until CommitTransaction.
func (db *DB) SaveRooms(ctx context.Context, list []*occupancy.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for _, room := range list {
		if _, exists := db.rooms[room.Name]; exists {
			return fmt.Errorf("room %s: %w", room.Name, rooms.ErrRoomExists)
		}

		if _, staged := trx.roomModifications[room.Name]; staged {
			return fmt.Errorf("room %s: %w", room.Name, rooms.ErrRoomExists)
		}

		trx.roomModifications[room.Name] = room
	}

	return nil
}

// GetRooms returns rooms in the order of names. The result is never nil.
func (db *DB) GetRooms(_ context.Context, names []string) ([]*occupancy.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*occupancy.Room, 0, len(names))

	var missing []string

	for _, name := range names {
		room, ok := db.rooms[name]
		if !ok {
			missing = append(missing, name)

			continue
		}

		result = append(result, room)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), rooms.ErrRoomNotFound)
	}

	return result, nil
}

func (db *DB) ListRooms(_ context.Context) ([]*occupancy.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*occupancy.Room, 0, len(db.rooms))
	for _, room := range db.rooms {
		result = append(result, room)
	}

	slices.SortFunc(result, func(a, b *occupancy.Room) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, nil
}
