package main

import (
	"context"

	"repairdesk/internal/api"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("App start")
	if err := api.StartServer(context.Background()); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("App terminated")
}
