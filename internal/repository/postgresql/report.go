package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

const reportSelect = `
	SELECT r.id, r.type, r.date_debut, r.date_fin, r.contenu, r.created_at,
		e.id, e.nom, COALESCE(u.username, '')
	FROM rapports r
	JOIN employes e ON e.id = r.employe_id
	LEFT JOIN users u ON u.id = e.user_id
`

func scanReport(row pgx.Row) (report.Report, error) {
	var (
		rep        report.Report
		start, end time.Time
	)
	err := row.Scan(
		&rep.ID,
		&rep.Type,
		&start,
		&end,
		&rep.Content,
		&rep.CreatedAt,
		&rep.Author.ID,
		&rep.Author.Name,
		&rep.Author.User.Username,
	)
	if err != nil {
		return report.Report{}, err
	}
	rep.StartDate = dateonly.NewDate(start)
	rep.EndDate = dateonly.NewDate(end)
	return rep, nil
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	if filter.Type != "" && filter.Type != "all" {
		args = append(args, filter.Type)
		where = append(where, "r.type = $"+strconv.Itoa(len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		p := "$" + strconv.Itoa(len(args))
		where = append(where, "(r.contenu ILIKE "+p+" OR e.nom ILIKE "+p+")")
	}

	query := reportSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.created_at DESC, r.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]report.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, authorEmployeeID int64, req report.CreateReportRequest) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	start, err := dateonly.ParseDate(req.StartDate)
	if err != nil {
		return report.Report{}, err
	}
	end, err := dateonly.ParseDate(req.EndDate)
	if err != nil {
		return report.Report{}, err
	}

	query := `
		INSERT INTO rapports (employe_id, type, date_debut, date_fin, contenu)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = q.QueryRow(ctx, query, authorEmployeeID, req.Type, start.Time, end.Time, req.Content).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return report.Report{}, employee.ErrEmployeeNotFound
		}
		return report.Report{}, fmt.Errorf("failed to create report: %w", err)
	}

	return scanReport(q.QueryRow(ctx, reportSelect+` WHERE r.id = $1`, id))
}

// Delete implements report.ReportRepository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rapports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}
	return nil
}
