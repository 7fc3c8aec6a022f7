package calendar_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"packmates/internal/adapters/locker/local"
	"packmates/internal/adapters/storage/memory"
	"packmates/internal/domain/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*calendar.Service, calendar.Repository) {
	t.Helper()
	repo := memory.NewCalendarRepo()
	return calendar.NewService(repo, local.New(), nil), repo
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func availability(user, start, end string) calendar.CreateInput {
	return calendar.CreateInput{UserID: user, Type: calendar.EntryTypeAvailability, StartDate: start, EndDate: end}
}

func TestService_Create(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, calendar.CreateInput{
		UserID:    " owner ",
		Type:      calendar.EntryTypeRequest,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-05",
		Pets:      []string{" p1 "},
		Reason:    strPtr(" vacation "),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "owner", e.UserID)
	assert.Equal(t, calendar.StatusRequested, e.Status)
	assert.Equal(t, []string{"p1"}, e.Pets)
	assert.Equal(t, "vacation", e.Reason)
	assert.False(t, e.IsDeleted)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", calendar.FormatDate(e.StartDate))

	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestService_Create_Rejects(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-01"))
	var ve *calendar.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"endDate must be after startDate"}, ve.Messages)

	_, err = svc.Create(ctx, calendar.CreateInput{UserID: "u", Type: calendar.EntryTypeRequest, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: strPtr("x")})
	assert.ErrorIs(t, err, calendar.ErrMissingPets)

	_, err = svc.Create(ctx, availability("u", "bad", "2024-03-02"))
	var de *calendar.InvalidDateError
	assert.True(t, errors.As(err, &de))

	items, total, err := repo.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: "u"}, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestService_Create_Overlap(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-05"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, availability("u", "2024-03-04", "2024-03-06"))
	assert.ErrorIs(t, err, calendar.ErrOverlappingEntry)

	// pegadas no chocan
	_, err = svc.Create(ctx, availability("u", "2024-03-05", "2024-03-06"))
	require.NoError(t, err)

	// otro usuario, mismo intervalo
	_, err = svc.Create(ctx, availability("other", "2024-03-01", "2024-03-05"))
	require.NoError(t, err)

	changed, err := svc.SoftDelete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = svc.Create(ctx, availability("u", "2024-03-01", "2024-03-05"))
	require.NoError(t, err)
}

func TestService_Create_ConcurrentSameUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, availability("racer", "2024-05-01", "2024-05-03"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, overlap int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, calendar.ErrOverlappingEntry):
			overlap++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, overlap)

	_, total, err := repo.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: "racer"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestService_Update(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-03"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, availability("u", "2024-03-05", "2024-03-07"))
	require.NoError(t, err)

	later := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	calendar.SetNow(svc, func() time.Time { return later })

	// solo endDate: usa el start anterior y no choca consigo misma
	upd, err := svc.Update(ctx, a.ID, calendar.Patch{EndDate: strPtr("2024-03-04")})
	require.NoError(t, err)
	assert.True(t, upd.StartDate.Equal(a.StartDate))
	assert.Equal(t, "2024-03-04T00:00:00.000Z", calendar.FormatDate(upd.EndDate))
	assert.True(t, upd.UpdatedAt.Equal(later))
	assert.True(t, upd.CreatedAt.Equal(a.CreatedAt))

	_, err = svc.Update(ctx, a.ID, calendar.Patch{EndDate: strPtr("2024-03-06")})
	assert.ErrorIs(t, err, calendar.ErrOverlappingEntry)

	_, err = svc.Update(ctx, a.ID, calendar.Patch{StartDate: strPtr("2024-03-04")})
	var ve *calendar.ValidationError
	assert.True(t, errors.As(err, &ve))

	// cambio de tipo re-valida los campos de request
	typ := calendar.EntryTypeRequest
	_, err = svc.Update(ctx, a.ID, calendar.Patch{Type: &typ})
	assert.ErrorIs(t, err, calendar.ErrMissingPets)

	pets := []string{"p1"}
	upd, err = svc.Update(ctx, a.ID, calendar.Patch{Type: &typ, Pets: &pets, Reason: strPtr("trip"), NeighborDistanceRange: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, calendar.EntryTypeRequest, upd.Type)
	assert.Equal(t, 7, *upd.NeighborDistanceRange)

	// un patch sin fechas no re-chequea solapamiento
	booked := calendar.StatusBooked
	upd, err = svc.Update(ctx, a.ID, calendar.Patch{Status: &booked})
	require.NoError(t, err)
	assert.Equal(t, calendar.StatusBooked, upd.Status)

	_, err = svc.Update(ctx, "missing", calendar.Patch{Status: &booked})
	assert.ErrorIs(t, err, calendar.ErrNotFound)
}

func TestService_SoftAndHardDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	changed, err := svc.SoftDelete(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.SoftDelete(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = svc.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, calendar.ErrNotFound)

	_, err = svc.SoftDelete(ctx, "missing")
	assert.ErrorIs(t, err, calendar.ErrNotFound)

	n, err := svc.HardDelete(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = svc.HardDelete(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestService_FindMatches(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req, err := svc.Create(ctx, calendar.CreateInput{
		UserID: "owner", Type: calendar.EntryTypeRequest,
		StartDate: "2024-03-01", EndDate: "2024-03-05",
		Pets: []string{"p1"}, Reason: strPtr("trip"),
	})
	require.NoError(t, err)

	a := availability("sitter-a", "2024-02-28", "2024-03-02")
	a.NeighborDistanceRange = intPtr(5)
	ea, err := svc.Create(ctx, a)
	require.NoError(t, err)

	b := availability("sitter-b", "2024-03-04", "2024-03-10")
	b.NeighborDistanceRange = intPtr(2)
	eb, err := svc.Create(ctx, b)
	require.NoError(t, err)

	// borrada: no aparece
	c := availability("sitter-c", "2024-03-01", "2024-03-02")
	c.NeighborDistanceRange = intPtr(1)
	ec, err := svc.Create(ctx, c)
	require.NoError(t, err)
	_, err = svc.SoftDelete(ctx, ec.ID)
	require.NoError(t, err)

	got, err := svc.FindMatches(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, eb.ID, got[0].ID)
	assert.Equal(t, ea.ID, got[1].ID)

	_, err = svc.FindMatches(ctx, ea.ID)
	assert.ErrorIs(t, err, calendar.ErrWrongType)

	_, err = svc.FindMatches(ctx, "missing")
	assert.ErrorIs(t, err, calendar.ErrNotFound)
}

func TestService_ListAndStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, in := range []calendar.CreateInput{
		availability("u1", "2024-03-10", "2024-03-11"),
		availability("u1", "2024-03-01", "2024-03-02"),
		{UserID: "u2", Type: calendar.EntryTypeRequest, StartDate: "2024-03-05", EndDate: "2024-03-06", Pets: []string{"p"}, Reason: strPtr("x")},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	items, total, err := svc.ListByUser(ctx, "u1", calendar.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.True(t, items[0].StartDate.Before(items[1].StartDate))

	_, total, err = svc.ListRequests(ctx, calendar.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = svc.ListAvailability(ctx, calendar.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, _, err = svc.ListByUser(ctx, " ", calendar.Query{})
	assert.Error(t, err)

	_, _, err = svc.List(ctx, calendar.Query{Limit: 1000})
	var ve *calendar.ValidationError
	assert.True(t, errors.As(err, &ve))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalEntries)
	assert.Equal(t, 2, st.AvailabilityEntries)
	assert.Equal(t, 1, st.RequestEntries)
	assert.Equal(t, 2, st.EntriesByStatus[calendar.StatusAvailable])
}

func TestService_PurgeDeleted(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	t0 := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	calendar.SetNow(svc, func() time.Time { return t0 })

	old, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-02"))
	require.NoError(t, err)
	_, err = svc.SoftDelete(ctx, old.ID)
	require.NoError(t, err)

	calendar.SetNow(svc, func() time.Time { return t0.Add(20 * 24 * time.Hour) })
	recent, err := svc.Create(ctx, availability("u", "2024-03-02", "2024-03-03"))
	require.NoError(t, err)
	_, err = svc.SoftDelete(ctx, recent.ID)
	require.NoError(t, err)

	n, err := svc.PurgeDeleted(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.PurgeDeleted(ctx, 10*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	items, _, err := repo.Query(ctx, calendar.Query{Filter: calendar.Filter{UserID: "u"}, Limit: 10, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, recent.ID, items[0].ID)
}

type failingRepo struct {
	calendar.Repository
}

var errBoom = errors.New("boom")

func (failingRepo) GetByID(context.Context, string) (calendar.Entry, error) {
	return calendar.Entry{}, errBoom
}

func (failingRepo) HasOverlap(context.Context, string, time.Time, time.Time, string) (bool, error) {
	return false, errBoom
}

func TestService_StorageErrorsAreWrapped(t *testing.T) {
	svc := calendar.NewService(failingRepo{}, nil, nil)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "x")
	var se *calendar.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "get", se.Op)
	assert.ErrorIs(t, err, errBoom)

	_, err = svc.Create(ctx, availability("u", "2024-03-01", "2024-03-02"))
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "has_overlap", se.Op)
}

type blockedLocker struct{}

func (blockedLocker) Lock(ctx context.Context, _ string) (func(), error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestService_LockTimeout(t *testing.T) {
	svc := calendar.NewService(memory.NewCalendarRepo(), blockedLocker{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Create(ctx, availability("u", "2024-03-01", "2024-03-02"))
	var se *calendar.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "lock", se.Op)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
