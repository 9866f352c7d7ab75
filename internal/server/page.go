package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/session"
)

// handleIndex renders the catalog landing page: stats bar, facet sidebar,
// and one card per record. The page carries no sensitive data regardless of
// role; the detail view handles that separately.
func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := s.store.Products(ctx, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	vocab, err := s.store.FilterVocabulary(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	state := session.NewState()
	if claims, ok := sessionFrom(c); ok {
		state.SetUser(catalog.AuthStatus{
			Authenticated: true,
			Username:      claims.Username,
			Role:          claims.Role,
		})
	}
	state.ApplyProducts(state.BeginLoad(), records)

	card, err := s.renderers.Get("card")
	if err != nil {
		s.fail(c, err)
		return
	}
	cards := make([]string, 0, len(records))
	for _, rec := range records {
		out, err := card.RenderRecord(ctx, rec, state.Role())
		if err != nil {
			s.fail(c, err)
			return
		}
		cards = append(cards, string(out))
	}

	user := state.User()
	page, err := s.pages.Render("index", map[string]any{
		"title": "Data Catalog",
		"user": map[string]any{
			"authenticated": user.Authenticated,
			"username":      user.Username,
			"role":          string(user.Role),
		},
		"stats":      state.Stats(),
		"vocabulary": vocab,
		"cards":      cards,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
