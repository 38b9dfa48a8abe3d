package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrRecordNotFound = common.ErrRecordNotFound
	ErrUserForeignKey = errors.New("user_id does not exist")
)

const blogColumns = `b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, u.id, u.username, u.name`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanBlog reads a row selected with blogColumns. The owner stays nil for unowned blogs.
func scanBlog(row scanner) (*Blog, error) {
	var (
		blog     Blog
		userID   sql.NullInt64
		ownerID  sql.NullInt64
		username sql.NullString
		name     sql.NullString
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &userID, &blog.CreatedAt, &ownerID, &username, &name)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		id := int(userID.Int64)
		blog.UserID = &id
	}

	if ownerID.Valid {
		blog.User = &BlogOwner{
			ID:       int(ownerID.Int64),
			Username: username.String,
			Name:     name.String,
		}
	}

	return &blog, nil
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogByID returns the blog joined with its owner.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// getBlogs returns a page of blogs in insertion order.
func (m *BlogModel) getBlogs(ctx context.Context, limit, offset int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.id
		LIMIT $1 OFFSET $2`

	return m.queryBlogs(ctx, query, limit, offset)
}

// getAllBlogs returns every blog in insertion order, for the aggregates.
func (m *BlogModel) getAllBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.id`

	return m.queryBlogs(ctx, query)
}

func (m *BlogModel) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) updateLikes(ctx context.Context, id, likes int) error {
	query := `
		UPDATE blogs
		SET likes = $1, version = version + 1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, likes, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// deleteBlog only removes the blog when it is owned by userID.
func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
