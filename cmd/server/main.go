package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"burlometro/internal/app"
	"burlometro/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("BURLOMETRO_CONFIG"))
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Log.Apply(); err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}
	if err := app.Serve(cfg); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
