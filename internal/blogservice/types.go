package blogservice

import (
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	URL       string     `json:"url"`
	Likes     int        `json:"likes"`
	UserID    *int       `json:"-"`
	User      *BlogOwner `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}

// BlogOwner is the part of the owning user listed with a blog.
type BlogOwner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache

	// statsGen is bumped on every write so GetStats never caches a summary read before it.
	statsGen atomic.Uint64
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}
