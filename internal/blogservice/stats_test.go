package blogservice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlogs() []Blog {
	return []Blog{
		{ID: 1, Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{ID: 2, Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
		{ID: 3, Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
		{ID: 4, Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10},
		{ID: 5, Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
		{ID: 6, Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
	}
}

func TestTotalLikes(t *testing.T) {
	blogs := testBlogs()

	tests := []struct {
		name  string
		blogs []Blog
		want  int
	}{
		{name: "empty list", blogs: nil, want: 0},
		{name: "one blog", blogs: blogs[:1], want: 7},
		{name: "all blogs", blogs: blogs, want: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalLikes(tt.blogs))
		})
	}
}

func TestFavoriteBlog(t *testing.T) {
	blogs := testBlogs()

	t.Run("empty list", func(t *testing.T) {
		_, ok := FavoriteBlog([]Blog{})
		assert.False(t, ok)
	})

	t.Run("one blog", func(t *testing.T) {
		fav, ok := FavoriteBlog(blogs[:1])
		require.True(t, ok)
		assert.Equal(t, blogs[0], fav)
	})

	t.Run("all blogs", func(t *testing.T) {
		fav, ok := FavoriteBlog(blogs)
		require.True(t, ok)
		assert.Equal(t, "Canonical string reduction", fav.Title)
		assert.Equal(t, 12, fav.Likes)

		for _, b := range blogs {
			assert.GreaterOrEqual(t, fav.Likes, b.Likes)
		}
	})

	t.Run("zero likes is still a result", func(t *testing.T) {
		fav, ok := FavoriteBlog(blogs[4:5])
		require.True(t, ok)
		assert.Equal(t, 0, fav.Likes)
		assert.Equal(t, "TDD harms architecture", fav.Title)
	})

	t.Run("tie goes to first occurrence", func(t *testing.T) {
		tied := []Blog{
			{ID: 1, Author: "a", Likes: 3},
			{ID: 2, Author: "b", Likes: 9},
			{ID: 3, Author: "c", Likes: 9},
		}

		fav, ok := FavoriteBlog(tied)
		require.True(t, ok)
		assert.Equal(t, 2, fav.ID)

		tied[1], tied[2] = tied[2], tied[1]
		fav, _ = FavoriteBlog(tied)
		assert.Equal(t, 3, fav.ID)
	})
}

func TestMostBlogs(t *testing.T) {
	blogs := testBlogs()

	tests := []struct {
		name   string
		blogs  []Blog
		want   AuthorBlogs
		wantOK bool
	}{
		{name: "empty list", blogs: nil, wantOK: false},
		{name: "one blog", blogs: blogs[:1], want: AuthorBlogs{Author: "Michael Chan", Blogs: 1}, wantOK: true},
		{name: "all blogs", blogs: blogs, want: AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, wantOK: true},
		{
			name:   "tie goes to first seen author",
			blogs:  []Blog{{Author: "b"}, {Author: "a"}, {Author: "a"}, {Author: "b"}},
			want:   AuthorBlogs{Author: "b", Blogs: 2},
			wantOK: true,
		},
		{
			name:   "authors compared exactly",
			blogs:  []Blog{{Author: "Kent Beck"}, {Author: "kent beck"}, {Author: "Kent Beck "}, {Author: "Martin Fowler"}, {Author: "Martin Fowler"}},
			want:   AuthorBlogs{Author: "Martin Fowler", Blogs: 2},
			wantOK: true,
		},
		{
			name:   "blogs without author form one group",
			blogs:  []Blog{{Author: ""}, {Author: "x"}, {Author: ""}},
			want:   AuthorBlogs{Author: "", Blogs: 2},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MostBlogs(tt.blogs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMostLikes(t *testing.T) {
	blogs := testBlogs()

	tests := []struct {
		name   string
		blogs  []Blog
		want   AuthorLikes
		wantOK bool
	}{
		{name: "empty list", blogs: []Blog{}, wantOK: false},
		{name: "one blog", blogs: blogs[:1], want: AuthorLikes{Author: "Michael Chan", Likes: 7}, wantOK: true},
		{name: "all blogs", blogs: blogs, want: AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, wantOK: true},
		{
			name:   "tie goes to first seen author",
			blogs:  []Blog{{Author: "x", Likes: 4}, {Author: "y", Likes: 10}, {Author: "x", Likes: 6}},
			want:   AuthorLikes{Author: "x", Likes: 10},
			wantOK: true,
		},
		{
			name:   "zero likes author",
			blogs:  []Blog{{Author: "x"}, {Author: "y"}},
			want:   AuthorLikes{Author: "x", Likes: 0},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MostLikes(tt.blogs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregatesDoNotMutateInput(t *testing.T) {
	blogs := testBlogs()
	before := testBlogs()

	for i := 0; i < 2; i++ {
		assert.Equal(t, 36, TotalLikes(blogs))

		fav, _ := FavoriteBlog(blogs)
		assert.Equal(t, 3, fav.ID)

		mb, _ := MostBlogs(blogs)
		assert.Equal(t, AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, mb)

		ml, _ := MostLikes(blogs)
		assert.Equal(t, AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, ml)
	}

	assert.Equal(t, before, blogs)
}

func TestAggregatesOrderIndependent(t *testing.T) {
	blogs := testBlogs()

	reversed := make([]Blog, len(blogs))
	for i, b := range blogs {
		reversed[len(blogs)-1-i] = b
	}

	assert.Equal(t, TotalLikes(blogs), TotalLikes(reversed))

	want, _ := MostLikes(blogs)
	got, _ := MostLikes(reversed)
	assert.Equal(t, want, got)
}

func TestSummarize(t *testing.T) {
	t.Run("empty list serializes absent results as null", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, Stats{}, s)

		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_likes":0,"favorite_blog":null,"most_blogs":null,"most_likes":null}`, string(b))
	})

	t.Run("all blogs", func(t *testing.T) {
		s := Summarize(testBlogs())
		assert.Equal(t, 36, s.TotalLikes)
		require.NotNil(t, s.FavoriteBlog)
		assert.Equal(t, 12, s.FavoriteBlog.Likes)
		assert.Equal(t, &AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, s.MostBlogs)
		assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, s.MostLikes)
	})
}
