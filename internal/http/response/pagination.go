package response

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// RespondPage writes a page-number paginated body. next and previous are absolute
// links to the neighbouring pages built from the current request URL.
func RespondPage(c *gin.Context, number, size int, count int64, results any) {
	p := Page{Count: count, Results: results}
	if size > 0 && int64(number*size) < count {
		p.Next = pageLink(c, number+1)
	}
	if number > 1 {
		p.Previous = pageLink(c, number-1)
	}
	RespondOK(c, p)
}

func pageLink(c *gin.Context, number int) *string {
	u := url.URL{
		Scheme: "http",
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
	}
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	q := c.Request.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
