package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/explora/travel-booking/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	now := time.Now().UTC()

	t.Run("FindByUsername success", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, "alice", args[0])
			return &fakeRow{values: []any{int64(7), "alice", "a@example.com", "hash", "user", now}}
		}}
		u, err := NewUserRepository(db).FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.Equal(t, int64(7), u.ID)
		require.Equal(t, "a@example.com", u.Email)
		require.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("FindByUsername without email", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{values: []any{int64(7), "alice", nil, "hash", "user", now}}
		}}
		u, err := NewUserRepository(db).FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.Empty(t, u.Email)
	})

	t.Run("FindByUsername not found", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		}}
		_, err := NewUserRepository(db).FindByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Create success", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "INSERT INTO users")
			require.Nil(t, args[1], "empty email must be stored as NULL")
			return &fakeRow{values: []any{int64(3), now}}
		}}
		u, err := NewUserRepository(db).Create(context.Background(), &domain.User{Username: "bob", PasswordHash: "h", Role: "user"})
		require.NoError(t, err)
		require.Equal(t, int64(3), u.ID)
		require.Equal(t, now, u.CreatedAt)
	})

	t.Run("Create duplicate", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{err: &pgconn.PgError{Code: uniqueViolation}}
		}}
		_, err := NewUserRepository(db).Create(context.Background(), &domain.User{Username: "bob"})
		require.ErrorIs(t, err, domain.ErrUserExists)
	})
}

func TestDestinationRepository(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		rows := &fakeRows{rows: [][]any{
			{int64(1), "Cusco", "Inca capital", "Andes", 100.0},
			{int64(2), "Lima", nil, nil, nil},
		}}
		db := &fakeDB{queryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return rows, nil }}

		list, err := NewDestinationRepository(db).List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, 100.0, *list[0].Price)
		require.Nil(t, list[1].Price)
		require.True(t, rows.closed, "rows must be released")
	})

	t.Run("List empty", func(t *testing.T) {
		db := &fakeDB{queryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &fakeRows{}, nil }}
		list, err := NewDestinationRepository(db).List(context.Background())
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeRow{err: pgx.ErrNoRows} }}
		_, err := NewDestinationRepository(db).FindByID(context.Background(), 9)
		require.ErrorIs(t, err, domain.ErrDestinationNotFound)
	})

	t.Run("Update passes nil for absent fields", func(t *testing.T) {
		price := 150.0
		db := &fakeDB{queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "COALESCE")
			require.Equal(t, int64(1), args[0])
			require.Nil(t, args[1].(*string))
			require.Equal(t, &price, args[4].(*float64))
			return &fakeRow{values: []any{int64(1), "Cusco", nil, "Andes", price}}
		}}
		d, err := NewDestinationRepository(db).Update(context.Background(), 1, domain.DestinationPatch{Price: &price})
		require.NoError(t, err)
		require.Equal(t, "Cusco", d.Name)
		require.Equal(t, price, *d.Price)
	})

	t.Run("Update not found", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeRow{err: pgx.ErrNoRows} }}
		_, err := NewDestinationRepository(db).Update(context.Background(), 9, domain.DestinationPatch{})
		require.ErrorIs(t, err, domain.ErrDestinationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		affected := int64(1)
		db := &fakeDB{execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			if affected == 0 {
				return pgconn.NewCommandTag("DELETE 0"), nil
			}
			return pgconn.NewCommandTag("DELETE 1"), nil
		}}
		repo := NewDestinationRepository(db)
		require.NoError(t, repo.Delete(context.Background(), 1))

		affected = 0
		require.ErrorIs(t, repo.Delete(context.Background(), 1), domain.ErrDestinationNotFound)
	})

	t.Run("Delete referenced", func(t *testing.T) {
		db := &fakeDB{execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{Code: foreignKeyViolation}
		}}
		require.ErrorIs(t, NewDestinationRepository(db).Delete(context.Background(), 1), domain.ErrDestinationInUse)
	})
}

func TestReservationRepository(t *testing.T) {
	now := time.Now().UTC()
	in := domain.NewDate(2024, time.January, 1)
	out := domain.NewDate(2024, time.January, 4)

	t.Run("Create", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, int64(7), args[0])
			require.Equal(t, in.Time, args[3])
			return &fakeRow{values: []any{int64(11), now}}
		}}
		r, err := NewReservationRepository(db).Create(context.Background(), &domain.Reservation{
			UserID: 7, DestinationID: 1, People: 2, CheckIn: in, CheckOut: out, TotalPrice: 600,
		})
		require.NoError(t, err)
		require.Equal(t, int64(11), r.ID)
		require.Equal(t, 600.0, r.TotalPrice)
	})

	t.Run("Create with vanished destination", func(t *testing.T) {
		db := &fakeDB{queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{err: &pgconn.PgError{Code: foreignKeyViolation}}
		}}
		_, err := NewReservationRepository(db).Create(context.Background(), &domain.Reservation{})
		require.ErrorIs(t, err, domain.ErrDestinationNotFound)
	})

	t.Run("ListByUser filters by caller", func(t *testing.T) {
		rows := &fakeRows{rows: [][]any{
			{int64(1), int64(7), int64(1), 2, in.Time, out.Time, 600.0, now},
		}}
		db := &fakeDB{queryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.True(t, strings.Contains(sql, "WHERE user_id = $1"))
			require.Equal(t, int64(7), args[0])
			return rows, nil
		}}
		list, err := NewReservationRepository(db).ListByUser(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "2024-01-04", list[0].CheckOut.String())
		require.True(t, rows.closed)
	})

	t.Run("ListByUser query error", func(t *testing.T) {
		db := &fakeDB{queryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("connection reset")
		}}
		_, err := NewReservationRepository(db).ListByUser(context.Background(), 7)
		require.Error(t, err)
	})
}

func TestEnsureSchema(t *testing.T) {
	var statements []string
	db := &fakeDB{execFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
		statements = append(statements, sql)
		return pgconn.CommandTag{}, nil
	}}

	require.NoError(t, EnsureAuthSchema(context.Background(), db))
	require.NoError(t, EnsureBookingSchema(context.Background(), db))
	require.Len(t, statements, len(authSchema)+len(bookingSchema))
	for _, stmt := range statements {
		require.Contains(t, stmt, "IF NOT EXISTS")
	}

	failing := &fakeDB{execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("db down")
	}}
	require.Error(t, EnsureBookingSchema(context.Background(), failing))
}
