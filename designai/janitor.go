package designai

import (
	"context"
	"sync"
	"time"

	log "github.com/furzing/techarabihackathon/chassis/logging"
	"github.com/furzing/techarabihackathon/chassis/storage"
)

// JanitorConfig ...
type JanitorConfig struct {
	Repository storage.AnalysisRepository
	Expiration int // seconds
	Interval   time.Duration
}

func cleaner(ctx context.Context, cfg *JanitorConfig, group *sync.WaitGroup) {
	log.WithFields(log.Fields{
		"event": "start_db_cleaner",
	}).Info("starting db cleaner with ", cfg.Expiration, "s expiration time")
	for {
		select {
		case <-ctx.Done():
			log.WithFields(log.Fields{
				"event":  "ctx_canceled",
				"worker": "db_cleaner",
			}).Info("exit goroutine")
			group.Done()
			return
		case <-time.After(cfg.Interval):
			cleaned, err := cfg.Repository.CleanOldAnalyses(ctx, cfg.Expiration)
			if err != nil {
				log.WithFields(log.Fields{
					"event":  "clean_table_failed",
					"worker": "db_cleaner",
				}).Error(err)
				continue
			}
			log.WithFields(log.Fields{
				"event":  "clean_table",
				"worker": "db_cleaner",
			}).Info("cleaned rows:", cleaned)
		}
	}
}

// RunJanitor starts the retention worker removing expired analyses.
func RunJanitor(ctx context.Context, cfg *JanitorConfig, group *sync.WaitGroup) {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	group.Add(1)
	go cleaner(ctx, cfg, group)
}
