package blogservice

// AuthorBlogs is the author with the most blogs.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the author whose blogs have the most likes in total.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats is the summary served by the stats endpoint. Nil fields mean the blog list was empty.
type Stats struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Blog        `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}

	return total
}

// FavoriteBlog returns the blog with the most likes, the earliest one on a tie.
// ok is false when blogs is empty.
func FavoriteBlog(blogs []Blog) (Blog, bool) {
	if len(blogs) == 0 {
		return Blog{}, false
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return fav, true
}

// MostBlogs returns the author with the most blogs, the first seen one on a tie.
// ok is false when blogs is empty.
func MostBlogs(blogs []Blog) (AuthorBlogs, bool) {
	author, n, ok := maxByAuthor(blogs, func(Blog) int { return 1 })
	if !ok {
		return AuthorBlogs{}, false
	}

	return AuthorBlogs{Author: author, Blogs: n}, true
}

// MostLikes returns the author with the highest like total, the first seen one on a tie.
// ok is false when blogs is empty.
func MostLikes(blogs []Blog) (AuthorLikes, bool) {
	author, n, ok := maxByAuthor(blogs, func(b Blog) int { return b.Likes })
	if !ok {
		return AuthorLikes{}, false
	}

	return AuthorLikes{Author: author, Likes: n}, true
}

// maxByAuthor sums weight per author, then picks the largest sum in first-seen order.
func maxByAuthor(blogs []Blog, weight func(Blog) int) (string, int, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	sums := make(map[string]int)
	var order []string
	for _, b := range blogs {
		if _, seen := sums[b.Author]; !seen {
			order = append(order, b.Author)
		}
		sums[b.Author] += weight(b)
	}

	best := order[0]
	for _, author := range order[1:] {
		if sums[author] > sums[best] {
			best = author
		}
	}

	return best, sums[best], true
}

// Summarize computes every aggregate over blogs in one Stats value.
func Summarize(blogs []Blog) Stats {
	s := Stats{TotalLikes: TotalLikes(blogs)}

	if fav, ok := FavoriteBlog(blogs); ok {
		s.FavoriteBlog = &fav
	}

	if mb, ok := MostBlogs(blogs); ok {
		s.MostBlogs = &mb
	}

	if ml, ok := MostLikes(blogs); ok {
		s.MostLikes = &ml
	}

	return s
}
