package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/occupancy/internal/config"
	"github.com/avstrong/occupancy/internal/logger"
	"github.com/avstrong/occupancy/internal/migration"
	"github.com/avstrong/occupancy/internal/rooms"
	"github.com/avstrong/occupancy/internal/storage/memory"
	"github.com/avstrong/occupancy/internal/transport/web"
)

const shutdownTimeout = 4 * time.Second

func Run(l *logger.Logger, envFile string) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	conf, err := config.LoadWithFile(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l = l.WithDebug(conf.Debug)

	storage := memory.New(memory.Config{L: l})
	if err := migration.Up(ctx, l, storage, conf.FixturesPath); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}

	roomManager := rooms.New(l, storage)

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.Host,
		Port:              conf.Port,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  conf.LivenessEndpoint,
	}

	srv := web.New(ctx, webConf, roomManager)

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		cancel()

		return fmt.Errorf("run http server: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
