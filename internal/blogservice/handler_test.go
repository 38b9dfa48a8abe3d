package blogservice

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/common"
)

func newMockService(t *testing.T) (*BlogService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBlogService(db, common.NewCache(time.Minute, time.Minute)), mock
}

func ownedRow(id, owner int) *sqlmock.Rows {
	return sqlmock.NewRows(blogRowColumns).
		AddRow(id, "React patterns", "Michael Chan", "https://reactpatterns.com/", 7, owner, time.Now(), owner, "mluukkai", "Matti Luukkainen")
}

func TestCreateBlog_Validation(t *testing.T) {
	s, mock := newMockService(t)
	negative := -1

	_, err := s.CreateBlog(context.Background(), &CreateBlogRequest{Author: "Michael Chan", Likes: &negative}, 1)

	var vErr common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "title")
	assert.Contains(t, vErr.Errors, "url")
	assert.Contains(t, vErr.Errors, "likes")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlog_DefaultsAndOwner(t *testing.T) {
	s, mock := newMockService(t)
	s.c.Set(common.CacheKeyBlogStats, Stats{})

	mock.ExpectQuery("INSERT INTO blogs").
		WithArgs("React patterns", "Michael Chan", "https://reactpatterns.com/", 0, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery("FROM blogs").WithArgs(1).WillReturnRows(ownedRow(1, 3))

	blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
		Title:  "React patterns<script>alert(1)</script>",
		Author: "Michael Chan",
		URL:    "https://reactpatterns.com/",
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, "mluukkai", blog.User.Username)

	_, cached := s.c.Get(common.CacheKeyBlogStats)
	assert.False(t, cached)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBlog_Guard(t *testing.T) {
	tests := []struct {
		name    string
		userID  int
		setup   func(m sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:   "owner",
			userID: 3,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("FROM blogs").WithArgs(1).WillReturnRows(ownedRow(1, 3))
				m.ExpectExec("DELETE FROM blogs").WithArgs(1, 3).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "not the owner",
			userID: 4,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("FROM blogs").WithArgs(1).WillReturnRows(ownedRow(1, 3))
			},
			wantErr: ErrNotPermitted,
		},
		{
			name:   "unowned blog",
			userID: 3,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("FROM blogs").WithArgs(1).WillReturnRows(sqlmock.NewRows(blogRowColumns).
					AddRow(1, "Type wars", "Robert C. Martin", "http://blog.cleancoder.com/", 2, nil, time.Now(), nil, nil, nil))
			},
			wantErr: ErrNotPermitted,
		},
		{
			name:   "unknown blog",
			userID: 3,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("FROM blogs").WithArgs(1).WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockService(t)
			tt.setup(mock)

			err := s.DeleteBlog(context.Background(), 1, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateLikes_Validation(t *testing.T) {
	s, mock := newMockService(t)

	_, err := s.UpdateLikes(context.Background(), 1, -5)

	var vErr common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "likes")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBlogs_Defaults(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery("LIMIT").WithArgs(DefaultLimit, 0).WillReturnRows(sqlmock.NewRows(blogRowColumns))
	_, err := s.GetBlogs(context.Background(), 0, -3)
	require.NoError(t, err)

	mock.ExpectQuery("LIMIT").WithArgs(MaxLimit, 10).WillReturnRows(sqlmock.NewRows(blogRowColumns))
	_, err = s.GetBlogs(context.Background(), MaxLimit+1, 10)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_Cached(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery("FROM blogs").WillReturnRows(ownedRow(1, 3))

	first, err := s.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, first.TotalLikes)

	second, err := s.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_WriteDuringReadIsNotCached(t *testing.T) {
	s, mock := newMockService(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("ORDER BY b.id").WillDelayFor(300 * time.Millisecond).WillReturnRows(ownedRow(1, 3))
	mock.ExpectExec("UPDATE blogs").WithArgs(50, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("WHERE b.id").WithArgs(1).WillReturnRows(sqlmock.NewRows(blogRowColumns).
		AddRow(1, "React patterns", "Michael Chan", "https://reactpatterns.com/", 50, 3, time.Now(), 3, "mluukkai", "Matti Luukkainen"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stats, err := s.GetStats(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 7, stats.TotalLikes)
	}()

	time.Sleep(100 * time.Millisecond)
	_, err := s.UpdateLikes(context.Background(), 1, 50)
	require.NoError(t, err)
	wg.Wait()

	_, cached := s.c.Get(common.CacheKeyBlogStats)
	assert.False(t, cached)

	mock.ExpectQuery("ORDER BY b.id").WillReturnRows(sqlmock.NewRows(blogRowColumns).
		AddRow(1, "React patterns", "Michael Chan", "https://reactpatterns.com/", 50, 3, time.Now(), 3, "mluukkai", "Matti Luukkainen"))

	stats, err := s.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, stats.TotalLikes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func createTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	var id int
	err := db.QueryRow(`INSERT INTO users (username, name, password) VALUES ($1, $2, $3) RETURNING id`,
		username, "Test User", []byte("hash")).Scan(&id)
	require.NoError(t, err)

	return id
}

func TestBlogService_Postgres(t *testing.T) {
	db := common.TestDB(t)
	s := NewBlogService(db, common.NewCache(5*time.Minute, 10*time.Minute))
	ctx := context.Background()

	owner := createTestUser(t, db, "mluukkai")
	other := createTestUser(t, db, "hellas")

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats.FavoriteBlog)

	for _, b := range testBlogs() {
		likes := b.Likes
		_, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: b.Title, Author: b.Author, URL: b.URL, Likes: &likes}, owner)
		require.NoError(t, err)
	}

	blogs, err := s.GetBlogs(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, blogs, 6)
	assert.Equal(t, "React patterns", blogs[0].Title)
	assert.Equal(t, "mluukkai", blogs[0].User.Username)

	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 36, stats.TotalLikes)
	assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, stats.MostLikes)

	updated, err := s.UpdateLikes(ctx, blogs[0].ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Likes)

	_, err = s.UpdateLikes(ctx, 100000, 8)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeleteBlog(ctx, blogs[0].ID, other)
	assert.ErrorIs(t, err, ErrNotPermitted)

	err = s.DeleteBlog(ctx, blogs[0].ID, owner)
	require.NoError(t, err)

	_, err = s.GetBlogByID(ctx, blogs[0].ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 29, stats.TotalLikes)

	_, err = s.CreateBlog(ctx, &CreateBlogRequest{Title: "Orphan", URL: "https://example.com"}, 100000)
	assert.ErrorIs(t, err, ErrUserForeignKey)
}
