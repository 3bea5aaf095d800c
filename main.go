package main

import (
	"log"

	"tiket-bioskop/cmd"
	"tiket-bioskop/internal/data/repository"
	"tiket-bioskop/internal/hold"
	"tiket-bioskop/internal/wire"
	"tiket-bioskop/internal/worker"
	"tiket-bioskop/pkg/database"
	"tiket-bioskop/pkg/utils"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Redis backs both the seat holds and the expiry queue
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer rdb.Close()

	holds := hold.NewStore(rdb, config.Booking.HoldTTL, config.Booking.MaxSeatsPerTicket, logger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	scheduler := worker.NewScheduler(asynqClient, config.Booking.PaymentWindow, logger)

	// The expiry worker shares the process; a dedicated deployment can
	// run worker.Run on its own instead.
	go func() {
		w := worker.NewWorker(repos, logger)
		if err := worker.Run(redisOpt, w, logger); err != nil {
			logger.Error("Worker stopped", zap.Error(err))
		}
	}()

	app := wire.Wiring(repos, holds, scheduler, config, logger)

	cmd.APIServer(app.Router, config.App.Port, logger)
}
