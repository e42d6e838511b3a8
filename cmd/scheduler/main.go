package main

import (
	"context"
	"os"
	"os/signal"
	"medremind/internal/app/deps"
	"medremind/internal/app/services"
	"medremind/internal/core/domain/logging"
	"medremind/internal/scheduler"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	reminderScheduler := scheduler.New(
		log,
		services.DispatchReminders,
		deps.Now,
		deps.Location,
	)
	if err := reminderScheduler.Start(); err != nil {
		log.Error(context.Background(), "Could not start reminder scheduler.", logging.Entry("err", err))
		panic(err)
	}

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := reminderScheduler.Stop(stopCtx); err != nil {
		log.Error(context.Background(), "Reminder scheduler stopped uncleanly.", logging.Entry("err", err))
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
