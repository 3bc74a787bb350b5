package pkg

import (
	"fmt"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/handler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Application - HTTP-сервер учёта заявок. Отдаёт только JSON API:
// шаблонов и статики нет, фронтенд ходит на /api с JWT.
type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
	}
}

// RunApp регистрирует маршруты API, /ping и /metrics и блокируется до остановки сервера
func (a *Application) RunApp() error {
	logrus.Info("Server start up")

	a.Handler.RegisterRoutes(a.Router)
	logrus.Infof("Registered %d routes", len(a.Router.Routes()))

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		return err
	}

	logrus.Info("Server down")
	return nil
}
