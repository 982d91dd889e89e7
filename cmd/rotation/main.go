package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := newRootCmd(loadApp).Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
