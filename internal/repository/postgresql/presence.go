package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
	"github.com/jackc/pgx/v5"
)

type presenceRepositoryImpl struct {
	db *database.DB
}

func NewPresenceRepository(db *database.DB) presence.Repository {
	return &presenceRepositoryImpl{db: db}
}

const presenceSelect = `
	SELECT p.id, p.date,
		TO_CHAR(p.heure_arrivee, 'HH24:MI:SS'), TO_CHAR(p.heure_sortie, 'HH24:MI:SS'),
		p.statut, e.id, e.nom, COALESCE(u.id, 0), COALESCE(u.username, '')
	FROM presences p
	JOIN employes e ON e.id = p.employe_id
	LEFT JOIN users u ON u.id = e.user_id
`

func scanPresence(row pgx.Row) (presence.Record, error) {
	var (
		rec  presence.Record
		date time.Time
	)
	err := row.Scan(
		&rec.ID,
		&date,
		&rec.CheckInTime,
		&rec.CheckOutTime,
		&rec.Status,
		&rec.Employee.ID,
		&rec.Employee.Name,
		&rec.Employee.User.ID,
		&rec.Employee.User.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return presence.Record{}, presence.ErrPresenceNotFound
		}
		return presence.Record{}, err
	}
	rec.Date = dateonly.NewDate(date)
	return rec, nil
}

// List implements presence.Repository.
func (r *presenceRepositoryImpl) List(ctx context.Context, filter presence.ListFilter) ([]presence.Record, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Date != "" {
		d, err := dateonly.ParseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		where = append(where, "p.date = "+arg(d.Time))
	}
	if filter.Status != "" && filter.Status != presence.StatusAll {
		where = append(where, "p.statut = "+arg(filter.Status))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, "(e.nom ILIKE "+p+" OR u.username ILIKE "+p+")")
	}
	if filter.OwnerUserID != nil {
		where = append(where, "e.user_id = "+arg(*filter.OwnerUserID))
	}

	query := presenceSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.date DESC, p.id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list presences: %w", err)
	}
	defer rows.Close()

	records := make([]presence.Record, 0)
	for rows.Next() {
		rec, err := scanPresence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presence: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID implements presence.Repository.
func (r *presenceRepositoryImpl) GetByID(ctx context.Context, id int64) (presence.Record, error) {
	q := GetQuerier(ctx, r.db)
	return scanPresence(q.QueryRow(ctx, presenceSelect+` WHERE p.id = $1`, id))
}

// GetByEmployeeAndDate implements presence.Repository.
func (r *presenceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date dateonly.Date) (presence.Record, error) {
	q := GetQuerier(ctx, r.db)
	return scanPresence(q.QueryRow(ctx, presenceSelect+` WHERE p.employe_id = $1 AND p.date = $2`, employeeID, date.Time))
}

// Create implements presence.Repository.
func (r *presenceRepositoryImpl) Create(ctx context.Context, record presence.Record) (presence.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO presences (employe_id, date, heure_arrivee, heure_sortie, statut)
		VALUES ($1, $2, $3::time, $4::time, $5)
		RETURNING id
	`
	var id int64
	err := q.QueryRow(ctx, query,
		record.Employee.ID,
		record.Date.Time,
		record.CheckInTime,
		record.CheckOutTime,
		record.Status,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err, ""):
			return presence.Record{}, presence.ErrPresenceExists
		case isForeignKeyViolation(err):
			return presence.Record{}, presence.ErrNoEmployeeProfile
		}
		return presence.Record{}, fmt.Errorf("failed to create presence: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update implements presence.Repository.
func (r *presenceRepositoryImpl) Update(ctx context.Context, record presence.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE presences
		SET heure_arrivee = $1::time, heure_sortie = $2::time, statut = $3
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, record.CheckInTime, record.CheckOutTime, record.Status, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update presence %d: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return presence.ErrPresenceNotFound
	}
	return nil
}
