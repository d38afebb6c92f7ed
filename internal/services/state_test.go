package services

import (
	"testing"
	"time"

	"icebreaker-backend/internal/ws"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectStateUpsert(mock sqlmock.Sqlmock, key, value string) {
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "zo_banfoo_25_state"`).
		WithArgs(key, value, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestSetBroadcastsFreshStamp(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStateService(db, ws.NewHub(), time.Second)

	expectStateUpsert(mock, "freeze", "true")

	state, err := svc.Set("freeze", "true")
	require.NoError(t, err)
	assert.Equal(t, "freeze", state.Key)
	assert.Equal(t, "true", state.Value)
	assert.False(t, state.TimeUpdated.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPulseRevertsAfterDelay(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStateService(db, ws.NewHub(), 200*time.Millisecond)

	expectStateUpsert(mock, "naturalDisaster", "true")

	state, err := svc.Pulse("naturalDisaster", "true", "false", nil)
	require.NoError(t, err)

	// The database hands back the stamp rounded to microseconds, not the
	// nanosecond value we wrote. The revert must still fire.
	rounded := state.TimeUpdated.Truncate(time.Microsecond)
	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_state" WHERE key = \$1`).
		WithArgs("naturalDisaster", 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "time_updated"}).
			AddRow("naturalDisaster", "true", rounded))
	expectStateUpsert(mock, "naturalDisaster", "false")

	require.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, 2*time.Second, 20*time.Millisecond, "revert write never executed")
}

func TestPulseSkipsRevertAfterNewerWrite(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStateService(db, ws.NewHub(), 100*time.Millisecond)

	expectStateUpsert(mock, "worldPeace", "true")

	state, err := svc.Pulse("worldPeace", "true", "false", nil)
	require.NoError(t, err)

	// Someone overwrote the row inside the window; the pulse must leave the
	// newer value alone, so no upsert expectation is registered.
	newer := state.TimeUpdated.Truncate(time.Microsecond).Add(time.Second)
	mock.ExpectQuery(`SELECT \* FROM "zo_banfoo_25_state" WHERE key = \$1`).
		WithArgs("worldPeace", 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "time_updated"}).
			AddRow("worldPeace", "paused", newer))

	time.Sleep(400 * time.Millisecond)
	assert.NoError(t, mock.ExpectationsWereMet())
}
