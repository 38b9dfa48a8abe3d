package blogservice

import (
	"net/url"

	"github.com/sushihentaime/bloglist/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(v.CheckStringLength(author, 0, 100), "author", "must not be more than 100 characters long")
}

func validateURL(v *common.Validator, rawURL string) {
	v.Check(rawURL != "", "url", "must be provided")
	v.Check(v.CheckStringLength(rawURL, 1, 500), "url", "must not be more than 500 characters long")

	u, err := url.Parse(rawURL)
	v.Check(err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https"), "url", "must be a valid http or https address")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

func validateBlog(v *common.Validator, b *Blog) {
	validateTitle(v, b.Title)
	validateAuthor(v, b.Author)
	validateURL(v, b.URL)
	validateLikes(v, b.Likes)
}
