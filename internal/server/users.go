package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/billfold/billfold/internal/user/domain"
)

type createUserRequest struct {
	Email      string `json:"email"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Role       string `json:"role"`
}

type listUsersQuery struct {
	Limit  int `form:"limit"`
	Page   int `form:"page"`
	Offset int `form:"offset"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Email:      req.Email,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Street:     req.Street,
		Role:       req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) ListUsers(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUsersRequest{
		Limit:  q.Limit,
		Page:   q.Page,
		Offset: q.Offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetUser(c *gin.Context) {
	found, err := s.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (s *Server) DeleteUser(c *gin.Context) {
	if err := s.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
