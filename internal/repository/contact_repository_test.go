package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDB is a mock implementation of DB
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), called.Error(0)
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(ctx, sql, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(pgx.Rows), called.Error(1)
}

// fakeRows serves fixed row values through the pgx.Rows interface
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = row[i].(string)
		case *time.Time:
			*target = row[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestPgContactRepository_Save(t *testing.T) {
	db := new(MockDB)
	repo := NewPgContactRepository(db)
	ctx := context.Background()

	ts := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	submission := &models.ContactSubmission{
		ID:        "5b0b8c3e-7f55-4d0f-9a55-0f3c9f0b3a11",
		Name:      "Jane Doe",
		Email:     "jane@acme.com",
		Company:   "Acme",
		Message:   "Hello",
		Timestamp: ts,
	}

	db.On("Exec", ctx, insertSubmissionSQL,
		[]any{submission.ID, "Jane Doe", "jane@acme.com", "Acme", "Hello", ts},
	).Return(nil).Once()

	require.NoError(t, repo.Save(ctx, submission))
	db.AssertExpectations(t)
}

func TestPgContactRepository_Save_Error(t *testing.T) {
	db := new(MockDB)
	repo := NewPgContactRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, insertSubmissionSQL, mock.Anything).Return(errors.New("connection reset")).Once()

	err := repo.Save(ctx, &models.ContactSubmission{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert contact submission")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPgContactRepository_List(t *testing.T) {
	db := new(MockDB)
	repo := NewPgContactRepository(db)
	ctx := context.Background()

	newer := time.Date(2026, 10, 16, 12, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	older := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	rows := &fakeRows{data: [][]any{
		{"id-2", "Jane Doe", "jane@acme.com", "Acme", "Hello again", newer},
		{"id-1", "John Roe", "john@roe.io", "Roe LLC", "Hi", older},
	}}

	db.On("Query", ctx, listSubmissionsSQL, []any{models.DefaultContactListLimit, 0}).Return(rows, nil).Once()

	submissions, err := repo.List(ctx, models.ContactListOptions{})
	require.NoError(t, err)
	require.Len(t, submissions, 2)

	assert.Equal(t, "id-2", submissions[0].ID)
	assert.Equal(t, "Acme", submissions[0].Company)
	assert.Equal(t, time.UTC, submissions[0].Timestamp.Location())
	assert.True(t, newer.Equal(submissions[0].Timestamp))
	assert.Equal(t, "id-1", submissions[1].ID)
	assert.True(t, rows.closed)
	db.AssertExpectations(t)
}

func TestPgContactRepository_List_EmptyIsNotNil(t *testing.T) {
	db := new(MockDB)
	repo := NewPgContactRepository(db)
	ctx := context.Background()

	db.On("Query", ctx, listSubmissionsSQL, []any{10, 20}).Return(&fakeRows{}, nil).Once()

	submissions, err := repo.List(ctx, models.ContactListOptions{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.NotNil(t, submissions)
	assert.Empty(t, submissions)
}

func TestPgContactRepository_List_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("query fails", func(t *testing.T) {
		db := new(MockDB)
		db.On("Query", ctx, listSubmissionsSQL, mock.Anything).Return(nil, errors.New("timeout")).Once()

		_, err := NewPgContactRepository(db).List(ctx, models.ContactListOptions{})
		assert.ErrorContains(t, err, "failed to query contact submissions")
	})

	t.Run("iteration fails", func(t *testing.T) {
		db := new(MockDB)
		db.On("Query", ctx, listSubmissionsSQL, mock.Anything).Return(&fakeRows{err: errors.New("conn closed")}, nil).Once()

		_, err := NewPgContactRepository(db).List(ctx, models.ContactListOptions{})
		assert.ErrorContains(t, err, "failed to iterate contact submissions")
	})
}
