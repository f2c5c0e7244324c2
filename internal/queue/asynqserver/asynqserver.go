package asynqserver

import (
	"github.com/bloghub/backend/internal/cache"
	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/queue/processor"
	"github.com/bloghub/backend/internal/queue/task"
	"github.com/bloghub/backend/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.VerificationEmailTaskName, processor.NewVerificationEmailProcessor(workers))
	mux.Handle(task.FavoriteNotificationTaskName, processor.NewFavoriteNotificationProcessor(workers))
	queues := map[string]int{
		task.VerificationEmailQueueName:    2,
		task.FavoriteNotificationQueueName: 1,
	}
	return mux, queues
}
