package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-inventory/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// newJSONContext builds an echo context carrying a JSON body, plus the
// recorder capturing the response.
func newJSONContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newShowHandler(db *sql.DB) *ShowHandler {
	return NewShowHandler(repository.NewShowRepo(db), repository.NewSeatRepo(db))
}

func TestCreateShowSeedsSeats(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shows (movie_name, total_seats) VALUES (?, ?)`)).
		WithArgs("Dune", uint32(3)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO seats (show_id, seat_number) VALUES (?, ?),(?, ?),(?, ?)`)).
		WithArgs(uint64(42), "S1", uint64(42), "S2", uint64(42), "S3").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	c, rec := newJSONContext(http.MethodPost, `{"movie_name":"Dune","total_seats":3}`)
	require.NoError(t, h.CreateShow(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowValidatesBody(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"total_seats":10}`},
		{"blank name", `{"movie_name":"   ","total_seats":10}`},
		{"zero seats", `{"movie_name":"Dune","total_seats":0}`},
		{"too many seats", `{"movie_name":"Dune","total_seats":501}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, tc.body)
			require.NoError(t, h.CreateShow(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	// Rejected requests never reach the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateShowRollsBackWhenSeatInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shows (movie_name, total_seats) VALUES (?, ?)`)).
		WithArgs("Dune", uint32(2)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO seats (show_id, seat_number) VALUES (?, ?),(?, ?)`)).
		WithArgs(uint64(42), "S1", uint64(42), "S2").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, `{"movie_name":"Dune","total_seats":2}`)
	require.NoError(t, h.CreateShow(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatSummaryUnknownShow(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, movie_name, total_seats, created_at FROM shows WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_name", "total_seats", "created_at"}))

	c, rec := newJSONContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.SeatSummary(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatSummaryInvalidID(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	c, rec := newJSONContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.SeatSummary(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeats(t *testing.T) {
	db, mock := newMockDB(t)
	h := newShowHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, movie_name, total_seats, created_at FROM shows WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_name", "total_seats", "created_at"}).
			AddRow(7, "Dune", 3, time.Date(2026, 2, 14, 19, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT seat_number FROM seats WHERE show_id = ? AND status = 'Available' ORDER BY seat_number`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("S1").AddRow("S3"))

	c, rec := newJSONContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.AvailableSeats(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"seats":["S1","S3"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
