package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	errs "github.com/yungbote/foodgram-backend/internal/pkg/errors"
	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
)

func TestMessageNegotiation(t *testing.T) {
	cases := []struct {
		header string
		code   string
		want   string
	}{
		{"", "recipe_not_found", "Рецепт не найден."},
		{"en-US,en;q=0.9", "recipe_not_found", "Recipe not found."},
		{"de-DE, ru;q=0.5", "self_subscription", "Нельзя подписаться на самого себя."},
		{"en", "no_such_code", "Request failed."},
		{"garbage;;;", "not_authenticated", "Учетные данные не были предоставлены."},
	}
	for _, tc := range cases {
		if got := Message(tc.header, tc.code); got != tc.want {
			t.Fatalf("Message(%q, %q) = %q, want %q", tc.header, tc.code, got, tc.want)
		}
	}
}

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail bool
	}{
		{"conflict", apierr.New(http.StatusConflict, "already_in_favorites", fmt.Errorf("%w: dup", errs.ErrConflict)), http.StatusConflict, "already_in_favorites", true},
		{"internal", apierr.New(http.StatusInternalServerError, "render_failed", errors.New("chrome exploded")), http.StatusInternalServerError, "render_failed", false},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal_error", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Accept-Language", "en")
			RespondAPIError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status=%d want %d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message == "" {
				t.Fatalf("unexpected envelope %+v", env)
			}
			if (env.Error.Detail != "") != tc.wantDetail {
				t.Fatalf("detail=%q, want present=%v", env.Error.Detail, tc.wantDetail)
			}
		})
	}
}

func TestRespondPageLinks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "http://api.test/api/recipes?page=2&limit=2&tags=lunch", nil)

	RespondPage(c, 2, 2, 5, []int{3, 4})

	var p struct {
		Count    int64   `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []int   `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Count != 5 || len(p.Results) != 2 {
		t.Fatalf("unexpected page %+v", p)
	}
	if p.Next == nil || *p.Next != "http://api.test/api/recipes?limit=2&page=3&tags=lunch" {
		t.Fatalf("next=%v", p.Next)
	}
	if p.Previous == nil || *p.Previous != "http://api.test/api/recipes?limit=2&tags=lunch" {
		t.Fatalf("previous=%v", p.Previous)
	}
}
