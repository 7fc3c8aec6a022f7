package calendartest

import (
	"context"
	"testing"
	"time"

	"packmates/internal/domain/calendar"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run ejercita el contrato de calendar.Repository contra una implementación.
// makeRepo debe devolver un store usable; los IDs de usuario son únicos por
// subtest, así que un store compartido (p.ej. una DB real) también sirve.
func Run(t *testing.T, makeRepo func(t *testing.T) calendar.Repository) {
	t.Helper()

	t.Run("create and get", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		user := newUser()

		e := Entry(user, calendar.EntryTypeRequest, Day(1), Day(3))
		e.Pets = []string{"p1", "p2"}
		e.Reason = "vacation"
		e.NeighborDistanceRange = intPtr(5)
		require.NoError(t, r.Create(ctx, e))

		got, err := r.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, got.ID)
		assert.Equal(t, user, got.UserID)
		assert.Equal(t, calendar.EntryTypeRequest, got.Type)
		assert.True(t, got.StartDate.Equal(Day(1)))
		assert.True(t, got.EndDate.Equal(Day(3)))
		assert.Equal(t, []string{"p1", "p2"}, got.Pets)
		assert.Equal(t, "vacation", got.Reason)
		require.NotNil(t, got.NeighborDistanceRange)
		assert.Equal(t, 5, *got.NeighborDistanceRange)
		assert.False(t, got.IsDeleted)
	})

	t.Run("get missing", func(t *testing.T) {
		r := makeRepo(t)
		_, err := r.GetByID(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, calendar.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		e := Entry(newUser(), calendar.EntryTypeAvailability, Day(1), Day(2))
		require.NoError(t, r.Create(ctx, e))

		e.Status = calendar.StatusBooked
		e.EndDate = Day(4)
		e.UpdatedAt = e.UpdatedAt.Add(time.Hour)
		require.NoError(t, r.Update(ctx, e))

		got, err := r.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, calendar.StatusBooked, got.Status)
		assert.True(t, got.EndDate.Equal(Day(4)))

		missing := Entry(newUser(), calendar.EntryTypeAvailability, Day(1), Day(2))
		assert.ErrorIs(t, r.Update(ctx, missing), calendar.ErrNotFound)
	})

	t.Run("soft delete hides entry and is idempotent", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		user := newUser()
		e := Entry(user, calendar.EntryTypeAvailability, Day(1), Day(2))
		require.NoError(t, r.Create(ctx, e))

		changed, err := r.SoftDelete(ctx, e.ID, Day(10))
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = r.SoftDelete(ctx, e.ID, Day(11))
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = r.GetByID(ctx, e.ID)
		assert.ErrorIs(t, err, calendar.ErrNotFound)

		items, total, err := r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user}, Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)

		items, total, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user}, Limit: 10, IncludeDeleted: true})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.True(t, items[0].IsDeleted)

		_, err = r.SoftDelete(ctx, uuid.NewString(), Day(10))
		assert.ErrorIs(t, err, calendar.ErrNotFound)
	})

	t.Run("hard delete", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		e := Entry(newUser(), calendar.EntryTypeAvailability, Day(1), Day(2))
		require.NoError(t, r.Create(ctx, e))

		n, err := r.HardDelete(ctx, e.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = r.HardDelete(ctx, e.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("query filters, order and pagination", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		user := newUser()

		e3 := Entry(user, calendar.EntryTypeAvailability, Day(5), Day(6))
		e1 := Entry(user, calendar.EntryTypeAvailability, Day(1), Day(2))
		e1.NeighborDistanceRange = intPtr(3)
		e2 := Entry(user, calendar.EntryTypeRequest, Day(3), Day(4))
		e2.Pets = []string{"p1"}
		e2.Reason = "trip"
		for _, e := range []calendar.Entry{e3, e1, e2} {
			require.NoError(t, r.Create(ctx, e))
		}

		items, total, err := r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user}, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []string{e1.ID, e2.ID, e3.ID}, ids(items))

		items, total, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user}, Skip: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []string{e2.ID}, ids(items))

		req := calendar.EntryTypeRequest
		items, _, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user, Type: &req}, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{e2.ID}, ids(items))

		from, until := Day(3), Day(6)
		items, _, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user, StartFrom: &from, EndUntil: &until}, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{e2.ID, e3.ID}, ids(items))

		items, _, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user, MaxDistance: intPtr(3)}, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{e1.ID}, ids(items))

		requested := calendar.StatusRequested
		items, _, err = r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: user, Status: &requested}, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{e2.ID}, ids(items))
	})

	t.Run("has overlap is strict and scoped", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()
		user := newUser()
		e := Entry(user, calendar.EntryTypeAvailability, Day(1), Day(3))
		require.NoError(t, r.Create(ctx, e))

		cases := []struct {
			name       string
			user       string
			start, end time.Time
			exclude    string
			want       bool
		}{
			{"inside", user, Day(2), Day(2).Add(time.Hour), "", true},
			{"covering", user, Day(0), Day(4), "", true},
			{"touching end", user, Day(3), Day(4), "", false},
			{"touching start", user, Day(0), Day(1), "", false},
			{"other user", newUser(), Day(1), Day(3), "", false},
			{"excluded self", user, Day(1), Day(3), e.ID, false},
		}
		for _, tc := range cases {
			got, err := r.HasOverlap(ctx, tc.user, tc.start, tc.end, tc.exclude)
			require.NoError(t, err, tc.name)
			assert.Equal(t, tc.want, got, tc.name)
		}

		_, err := r.SoftDelete(ctx, e.ID, Day(10))
		require.NoError(t, err)
		got, err := r.HasOverlap(ctx, user, Day(1), Day(3), "")
		require.NoError(t, err)
		assert.False(t, got, "soft-deleted entries never conflict")
	})

	t.Run("find available is inclusive", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()

		// Ventana lejana para no chocar con otros subtests sobre un store compartido.
		base := Day(400 + int(time.Now().UnixNano()%1000))
		at := func(d int) time.Time { return base.AddDate(0, 0, d) }

		touching := Entry(newUser(), calendar.EntryTypeAvailability, at(0), at(2))
		inside := Entry(newUser(), calendar.EntryTypeAvailability, at(3), at(4))
		booked := Entry(newUser(), calendar.EntryTypeAvailability, at(3), at(4))
		booked.Status = calendar.StatusBooked
		request := Entry(newUser(), calendar.EntryTypeRequest, at(3), at(4))
		request.Pets = []string{"p"}
		request.Reason = "r"
		far := Entry(newUser(), calendar.EntryTypeAvailability, at(20), at(21))
		deleted := Entry(newUser(), calendar.EntryTypeAvailability, at(3), at(4))

		for _, e := range []calendar.Entry{touching, inside, booked, request, far, deleted} {
			require.NoError(t, r.Create(ctx, e))
		}
		_, err := r.SoftDelete(ctx, deleted.ID, at(5))
		require.NoError(t, err)

		got, err := r.FindAvailable(ctx, at(2), at(5))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{touching.ID, inside.ID}, ids(got))
	})

	t.Run("stats and purge", func(t *testing.T) {
		r := makeRepo(t)
		ctx := context.Background()

		before, err := r.Stats(ctx)
		require.NoError(t, err)

		a := Entry(newUser(), calendar.EntryTypeAvailability, Day(1), Day(2))
		q := Entry(newUser(), calendar.EntryTypeRequest, Day(1), Day(2))
		q.Pets = []string{"p"}
		q.Reason = "r"
		gone := Entry(newUser(), calendar.EntryTypeAvailability, Day(1), Day(2))
		for _, e := range []calendar.Entry{a, q, gone} {
			require.NoError(t, r.Create(ctx, e))
		}
		_, err = r.SoftDelete(ctx, gone.ID, Day(10))
		require.NoError(t, err)

		after, err := r.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.TotalEntries+2, after.TotalEntries)
		assert.Equal(t, before.AvailabilityEntries+1, after.AvailabilityEntries)
		assert.Equal(t, before.RequestEntries+1, after.RequestEntries)
		assert.Equal(t, before.EntriesByStatus[calendar.StatusRequested]+1, after.EntriesByStatus[calendar.StatusRequested])

		n, err := r.PurgeDeleted(ctx, Day(11))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		_, total, err := r.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: gone.UserID}, Limit: 10, IncludeDeleted: true})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

// Day devuelve la medianoche UTC de un día fijo de referencia + offset.
func Day(offset int) time.Time {
	return time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

// Entry arma una entrada válida lista para guardar en un store.
func Entry(userID string, typ calendar.EntryType, start, end time.Time) calendar.Entry {
	now := time.Date(2029, time.December, 1, 12, 0, 0, 0, time.UTC)
	return calendar.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		StartDate: start,
		EndDate:   end,
		Status:    calendar.DefaultStatus(typ),
		Pets:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newUser() string { return "u-" + uuid.NewString() }

func intPtr(v int) *int { return &v }

func ids(items []calendar.Entry) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}
