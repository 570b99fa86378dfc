package apicontrollers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const WelcomeMessage = "Welcome to the To-Do List API with Go & MongoDB"

type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

func (c *HomeController) RegisterRoutes(e *echo.Group) {
	e.GET("/", c.Home)
	e.GET("/ping", c.Ping)
}

// Home godoc
// @Summary Welcome message
// @Tags home
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (c *HomeController) Home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Ping godoc
// @Summary Liveness check
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (c *HomeController) Ping(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"ping": "pong"})
}
