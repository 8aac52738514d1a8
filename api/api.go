package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/clubaccess/zkauth-node/auth"
	"github.com/clubaccess/zkauth-node/db"
	"github.com/gin-gonic/gin"
	"go.vocdoni.io/dvote/log"
)

// API allows external requests to the node
type API struct {
	r    *gin.Engine
	auth *auth.Service
}

// New returns a new API with the endpoints, without starting to listen
func New(authService *auth.Service) (*API, error) {
	if authService == nil {
		return nil, fmt.Errorf("can not create the API without the auth service")
	}

	a := API{auth: authService}

	r := gin.Default()
	r.POST("/auth/zkp-login", a.postZKPLogin)
	r.GET("/auth/user/:address", a.getUser)
	r.GET("/health", a.getHealth)
	a.r = r

	return &a, nil
}

// Serve serves the API at the given port
func (a *API) Serve(port string) error {
	return a.r.Run(":" + port)
}

func returnAuthErr(c *gin.Context, authErr *auth.Error) {
	if authErr.Status >= http.StatusInternalServerError {
		log.Errorf("HTTP API server error: %v", authErr)
	} else {
		log.Warnw("HTTP API client error", "code", string(authErr.Code),
			"err", authErr.Error())
	}
	c.JSON(authErr.Status, errorMsg{
		Error:   string(authErr.Code),
		Message: authErr.Message,
	})
}

func (a *API) postZKPLogin(c *gin.Context) {
	var req zkpLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		returnAuthErr(c, &auth.Error{
			Code:    auth.CodeInvalidPayload,
			Status:  http.StatusBadRequest,
			Message: err.Error(),
			Err:     err,
		})
		return
	}

	res, authErr := a.auth.Login(c.Request.Context(), req.ZKPCode)
	if authErr != nil {
		returnAuthErr(c, authErr)
		return
	}

	c.JSON(http.StatusOK, loginResp{
		Token:   res.Token,
		User:    res.User,
		Address: res.Address,
		TxHash:  res.TxHash,
	})
}

// requireSession validates the Authorization bearer token of the request.
// Returns false after writing the response when the session is missing or
// invalid.
func (a *API) requireSession(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		c.JSON(http.StatusUnauthorized, errorMsg{
			Error:   "UNAUTHORIZED",
			Message: "missing bearer token",
		})
		return false
	}
	if _, err := a.auth.Tokens().Validate(token); err != nil {
		log.Warnw("HTTP API invalid session token", "err", err)
		c.JSON(http.StatusUnauthorized, errorMsg{
			Error:   "UNAUTHORIZED",
			Message: "invalid session token",
		})
		return false
	}
	return true
}

func (a *API) getUser(c *gin.Context) {
	if !a.requireSession(c) {
		return
	}
	address := c.Param("address")
	user, err := a.auth.UserByAddress(address)
	if err == db.ErrUserNotFound {
		c.JSON(http.StatusNotFound, errorMsg{
			Error:   "USER_NOT_FOUND",
			Message: fmt.Sprintf("no account for address %s", address),
		})
		return
	}
	if err != nil {
		returnAuthErr(c, &auth.Error{
			Code:    auth.CodeServerError,
			Status:  http.StatusInternalServerError,
			Message: "can not read user",
			Err:     err,
		})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResp{
		Status: "ok",
		Club:   a.auth.ClubName(),
	})
}
