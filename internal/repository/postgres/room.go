package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pgnest-backend/internal/domain"
	"pgnest-backend/internal/repository"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `id, pg_id, room_no, capacity, occupied, rent, price_per_day, created_on, updated_on`

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (pg_id, room_no, capacity, occupied, rent, price_per_day, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, room.PGID, room.RoomNo, room.Capacity, room.Occupied, room.Rent, room.PricePerDay, time.Now(), time.Now()).Scan(&room.ID)
}

func (r *roomRepository) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	room := &domain.Room{}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.PGID, &room.RoomNo, &room.Capacity, &room.Occupied, &room.Rent, &room.PricePerDay, &room.CreatedOn, &room.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) ListByPGType(ctx context.Context, pgType domain.PGType) ([]domain.Room, error) {
	query := `SELECT r.id, r.pg_id, r.room_no, r.capacity, r.occupied, r.rent, r.price_per_day, r.created_on, r.updated_on
	          FROM rooms r JOIN pgs p ON r.pg_id = p.id WHERE p.pg_type = $1 ORDER BY r.room_no`
	rows, err := r.db.QueryContext(ctx, query, pgType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `UPDATE rooms SET room_no=$1, capacity=$2, occupied=$3, rent=$4, price_per_day=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, room.RoomNo, room.Capacity, room.Occupied, room.Rent, room.PricePerDay, time.Now(), room.ID)
	return err
}

const adjustOccupancyQuery = `UPDATE rooms SET occupied = occupied + $1, updated_on = $2
	          WHERE id = $3 AND occupied + $1 >= 0 AND occupied + $1 <= capacity`

// AdjustOccupancy moves the occupied count by delta, refusing to go below
// zero or above capacity.
func (r *roomRepository) AdjustOccupancy(ctx context.Context, roomID int32, delta int32) error {
	res, err := r.db.ExecContext(ctx, adjustOccupancyQuery, delta, time.Now(), roomID)
	if err != nil {
		return err
	}
	return checkOccupancyAdjusted(res, roomID, delta)
}

func checkOccupancyAdjusted(res sql.Result, roomID, delta int32) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("room %d occupancy adjustment by %d out of range", roomID, delta)
	}
	return nil
}

func scanRooms(rows *sql.Rows) ([]domain.Room, error) {
	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.PGID, &room.RoomNo, &room.Capacity, &room.Occupied, &room.Rent, &room.PricePerDay, &room.CreatedOn, &room.UpdatedOn); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
