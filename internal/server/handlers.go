package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-datacatalog/internal/oas"
	"github.com/goliatone/go-datacatalog/internal/store"
	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	account, err := s.store.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}

	token, err := s.issueToken(account)
	if err != nil {
		s.logger.Printf("issue token for %q: %v", account.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal error"})
		return
	}
	s.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"username": account.Username, "role": account.Role},
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	claims, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusOK, catalog.AuthStatus{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, catalog.AuthStatus{
		Authenticated: true,
		Username:      claims.Username,
		Role:          claims.Role,
	})
}

func (s *Server) handleFilters(c *gin.Context) {
	vocab, err := s.store.FilterVocabulary(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vocab)
}

func (s *Server) handleListProducts(c *gin.Context) {
	records, err := s.store.Products(c.Request.Context(), isAdmin(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleGetProduct(c *gin.Context) {
	rec, err := s.store.Product(c.Request.Context(), c.Param("id"), isAdmin(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var rec catalog.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	rec.ID = ""

	created, err := s.store.CreateProduct(c.Request.Context(), rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	var rec catalog.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	rec.ID = c.Param("id")

	updated, err := s.store.UpdateProduct(c.Request.Context(), rec)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	err := s.store.DeleteProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleColumnOptions(c *gin.Context) {
	options, err := s.store.ColumnOptions(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

type columnOptionChange struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

func (s *Server) handleAddColumnOption(c *gin.Context) {
	var body columnOptionChange
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := s.store.AddColumnOption(c.Request.Context(), body.Column, body.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleDeleteColumnOption(c *gin.Context) {
	var body columnOptionChange
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	err := s.store.DeleteColumnOption(c.Request.Context(), body.Column, body.Value)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Option not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.store.Users(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var body struct {
		Username string       `json:"username"`
		Password string       `json:"password"`
		Role     catalog.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}
	if body.Role != catalog.RoleAdmin && body.Role != catalog.RoleStandard {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	account, err := s.store.CreateUser(c.Request.Context(), body.Username, body.Password, body.Role)
	if errors.Is(err, store.ErrDuplicateUsername) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	claims, _ := sessionFrom(c)
	if claims != nil && claims.UserID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
		return
	}

	err = s.store.DeleteUser(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleOpenAPI(c *gin.Context) {
	if _, err := oas.Document(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", oas.Raw())
}

// fail logs the underlying error and returns an opaque 500. Storage details
// never reach the client.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
