package main

import (
	"os"

	"fxsummary/internal/app"

	"github.com/sirupsen/logrus"
)

// @title FX Summary API
// @version 1.0
// @description EUR to USD exchange rate summaries backed by the Frankfurter API, with caching, retries and a local snapshot fallback.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
