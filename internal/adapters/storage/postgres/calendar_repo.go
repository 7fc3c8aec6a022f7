package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"packmates/internal/domain/calendar"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// SQLSTATE de exclusion_violation (constraint calendar_entries_no_overlap).
const exclusionViolation = "23P01"

type CalendarRepo struct {
	db    *sql.DB
	types *pgtype.Map
}

func NewCalendarRepo(db *sql.DB) *CalendarRepo {
	return &CalendarRepo{db: db, types: pgtype.NewMap()}
}

const calendarColumns = `
	id, user_id, type,
	start_date, end_date, status,
	pets, reason, neighbor_distance_range,
	is_deleted, created_at, updated_at`

func (r *CalendarRepo) Create(ctx context.Context, e calendar.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_entries (`+calendarColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		e.UserID,
		string(e.Type),
		e.StartDate,
		e.EndDate,
		string(e.Status),
		petsArg(e.Pets),
		e.Reason,
		toNullInt(e.NeighborDistanceRange),
		e.IsDeleted,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return mapWriteErr(err)
}

func (r *CalendarRepo) GetByID(ctx context.Context, id string) (calendar.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return calendar.Entry{}, calendar.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+calendarColumns+`
		FROM calendar_entries
		WHERE id = $1 AND NOT is_deleted
	`, id)

	e, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.Entry{}, calendar.ErrNotFound
		}
		return calendar.Entry{}, err
	}
	return e, nil
}

func (r *CalendarRepo) Update(ctx context.Context, e calendar.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE calendar_entries
		SET
			type = $2,
			start_date = $3,
			end_date = $4,
			status = $5,
			pets = $6,
			reason = $7,
			neighbor_distance_range = $8,
			updated_at = $9
		WHERE id = $1 AND NOT is_deleted
	`,
		e.ID,
		string(e.Type),
		e.StartDate,
		e.EndDate,
		string(e.Status),
		petsArg(e.Pets),
		e.Reason,
		toNullInt(e.NeighborDistanceRange),
		e.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return calendar.ErrNotFound
	}
	return nil
}

func (r *CalendarRepo) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE calendar_entries
		SET is_deleted = TRUE, updated_at = $2
		WHERE id = $1 AND NOT is_deleted
	`, id, at)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	// 0 filas: ya estaba borrada (no-op) o no existe.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM calendar_entries WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, calendar.ErrNotFound
	}
	return false, nil
}

func (r *CalendarRepo) HardDelete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CalendarRepo) Query(ctx context.Context, q calendar.Query) ([]calendar.Entry, int, error) {
	where, args := buildWhere(q)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, q.Limit, q.Skip)
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM calendar_entries%s
		ORDER BY start_date ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, calendarColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *CalendarRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM calendar_entries
			WHERE user_id = $1
			  AND NOT is_deleted
			  AND start_date < $3
			  AND end_date > $2
			  AND ($4 = '' OR id <> $4)
		)
	`, userID, start, end, excludeID).Scan(&exists)
	return exists, err
}

func (r *CalendarRepo) FindAvailable(ctx context.Context, start, end time.Time) ([]calendar.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+calendarColumns+`
		FROM calendar_entries
		WHERE type = 'availability'
		  AND status = 'available'
		  AND NOT is_deleted
		  AND start_date <= $2
		  AND end_date >= $1
		ORDER BY start_date ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *CalendarRepo) Stats(ctx context.Context) (calendar.Stats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT type, status, COUNT(*)
		FROM calendar_entries
		WHERE NOT is_deleted
		GROUP BY type, status
	`)
	if err != nil {
		return calendar.Stats{}, err
	}
	defer rows.Close()

	st := calendar.Stats{
		EntriesByType:   map[calendar.EntryType]int{},
		EntriesByStatus: map[calendar.Status]int{},
	}
	for rows.Next() {
		var (
			typ, status string
			n           int
		)
		if err := rows.Scan(&typ, &status, &n); err != nil {
			return calendar.Stats{}, err
		}
		st.TotalEntries += n
		st.EntriesByType[calendar.EntryType(typ)] += n
		st.EntriesByStatus[calendar.Status(status)] += n
	}
	if err := rows.Err(); err != nil {
		return calendar.Stats{}, err
	}

	st.AvailabilityEntries = st.EntriesByType[calendar.EntryTypeAvailability]
	st.RequestEntries = st.EntriesByType[calendar.EntryTypeRequest]
	return st, nil
}

func (r *CalendarRepo) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM calendar_entries
		WHERE is_deleted AND updated_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// buildWhere arma el WHERE con placeholders $n en el orden de args.
func buildWhere(q calendar.Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !q.IncludeDeleted {
		conds = append(conds, "NOT is_deleted")
	}
	f := q.Filter
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Type != nil {
		add("type = $%d", string(*f.Type))
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	if f.StartFrom != nil {
		add("start_date >= $%d", *f.StartFrom)
	}
	if f.EndUntil != nil {
		add("end_date <= $%d", *f.EndUntil)
	}
	if f.MaxDistance != nil {
		add("neighbor_distance_range <= $%d", *f.MaxDistance)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CalendarRepo) scan(row rowScanner) (calendar.Entry, error) {
	var (
		e           calendar.Entry
		typ, status string
		pets        []string
		distance    sql.NullInt64
	)
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&typ,
		&e.StartDate,
		&e.EndDate,
		&status,
		r.types.SQLScanner(&pets),
		&e.Reason,
		&distance,
		&e.IsDeleted,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return calendar.Entry{}, err
	}

	e.Type = calendar.EntryType(typ)
	e.Status = calendar.Status(status)
	e.Pets = pets
	if e.Pets == nil {
		e.Pets = []string{}
	}
	if distance.Valid {
		d := int(distance.Int64)
		e.NeighborDistanceRange = &d
	}
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

func (r *CalendarRepo) scanAll(rows *sql.Rows) ([]calendar.Entry, error) {
	out := make([]calendar.Entry, 0)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// mapWriteErr traduce la violación de la exclusion constraint al error de dominio.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return calendar.ErrOverlappingEntry
	}
	return err
}

func petsArg(pets []string) []string {
	if pets == nil {
		return []string{}
	}
	return pets
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
