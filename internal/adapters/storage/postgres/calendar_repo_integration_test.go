package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"packmates/internal/domain/calendar"
	"packmates/internal/domain/calendar/calendartest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDSN usa PACKMATES_TEST_POSTGRES_DSN o, con PACKMATES_TEST_CONTAINERS=1,
// levanta un postgres efímero.
func testDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("PACKMATES_TEST_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if os.Getenv("PACKMATES_TEST_CONTAINERS") != "1" {
		t.Skip("PACKMATES_TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "packmates",
			"POSTGRES_PASSWORD": "packmates",
			"POSTGRES_DB":       "packmates",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://packmates:packmates@%s:%s/packmates?sslmode=disable", host, port.Port())
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(testDSN(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestCalendarRepo_Compliance(t *testing.T) {
	db := openTestDB(t)
	calendartest.Run(t, func(t *testing.T) calendar.Repository {
		return NewCalendarRepo(db)
	})
}

func TestCalendarRepo_ExclusionConstraint(t *testing.T) {
	db := openTestDB(t)
	r := NewCalendarRepo(db)
	ctx := context.Background()

	user := "u-excl-" + fmt.Sprint(time.Now().UnixNano())
	a := calendartest.Entry(user, calendar.EntryTypeAvailability, calendartest.Day(1), calendartest.Day(3))
	require.NoError(t, r.Create(ctx, a))

	// Saltea el chequeo del servicio: la DB sola debe rechazar el solapamiento.
	b := calendartest.Entry(user, calendar.EntryTypeAvailability, calendartest.Day(2), calendartest.Day(4))
	assert.ErrorIs(t, r.Create(ctx, b), calendar.ErrOverlappingEntry)

	// Intervalos pegados no chocan ('[)').
	c := calendartest.Entry(user, calendar.EntryTypeAvailability, calendartest.Day(3), calendartest.Day(4))
	require.NoError(t, r.Create(ctx, c))

	// Una entrada borrada no bloquea.
	_, err := r.SoftDelete(ctx, a.ID, calendartest.Day(10))
	require.NoError(t, err)
	d := calendartest.Entry(user, calendar.EntryTypeAvailability, calendartest.Day(1), calendartest.Day(2))
	require.NoError(t, r.Create(ctx, d))
}
