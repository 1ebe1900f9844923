package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application on the process' stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires the layers and plays games over in/out until the session ends.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	human, ok := tictactoe.ParsePlayer(conf.HumanMark)
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, conf.HumanMark)
	}

	matchService := service.NewNopMatchService()

	if conf.History.Enabled {
		if conf.History.Host == "" {
			return ErrAddrNotFound
		}
		redisAddrString := conf.History.GetRedisAddr()

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}()

		matchRepo := repository.NewMatchRepository(redisStorage.Connection, conf.History.TTL)
		scoreRepo := repository.NewScoreRepository(redisStorage.Connection)
		matchService = service.NewMatchService(matchRepo, scoreRepo)

		log.Info("Match history enabled", "addr", redisAddrString)
	}

	botService := service.NewBotService(logger, conf.FullOpeningSearch)
	gameManager := usecase.NewGameManager(logger, botService, matchService)
	consoleServer := console.New(logger, gameManager, in, out)

	log.Info("Starting console session", "human", human.String(), "agent", human.Opponent().String())

	if err := consoleServer.Start(ctx, human); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("Application context canceled, shutting down")
			return nil
		}
		return fmt.Errorf("console session failed: %w", err)
	}

	if conf.History.Enabled {
		score, err := matchService.GetScore(ctx)
		if err != nil {
			log.Error("could not read score", "error", err)
			return nil
		}
		consoleServer.PrintScore(score)
	}

	return nil
}
