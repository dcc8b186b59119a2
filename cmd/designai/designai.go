package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/furzing/techarabihackathon/chassis/logging"

	"github.com/furzing/techarabihackathon/chassis/archive"
	"github.com/furzing/techarabihackathon/chassis/config"
	"github.com/furzing/techarabihackathon/chassis/storage"
	"github.com/furzing/techarabihackathon/designai"
)

func main() {
	appCfg, err := config.Read()
	if err != nil {
		log.WithFields(log.Fields{
			"event": "config_read_failed",
		}).Fatal(err)
	}
	log.Init("designai", appCfg.DesignAI.LogLevel)
	log.WithFields(log.Fields{
		"event": "init_service",
	}).Info("service initialized")

	// Persistence is optional: without a DSN analyses live in memory only.
	var repo storage.AnalysisRepository
	var pgRepo *storage.PGRepository
	if appCfg.Storage.DSN != "" {
		pgRepo, err = storage.InitPGRepository(storage.Config{DSN: appCfg.Storage.DSN})
		if err != nil {
			log.WithFields(log.Fields{
				"event": "storage_init_failed",
			}).Fatal(err)
		}
		if err = pgRepo.EnsureSchema(context.Background()); err != nil {
			log.WithFields(log.Fields{
				"event": "storage_schema_failed",
			}).Fatal(err)
		}
		repo = pgRepo
	} else {
		log.WithFields(log.Fields{
			"event": "storage_memory_fallback",
		}).Info("no storage DSN configured, using in-memory repository")
		repo = storage.InitMemRepository()
	}

	var archiver archive.Archiver
	if appCfg.Archive.Enabled {
		archiver = archive.InitS3Archive(archive.Config{
			Bucket:             appCfg.Archive.Bucket,
			Region:             appCfg.AWS.Region,
			CredentialsFile:    appCfg.AWS.CredentialsFile,
			CredentialsProfile: appCfg.AWS.CredentialsProfile,
		})
	} else {
		archiver = archive.InitNoopArchive()
	}

	limiter := designai.NewRateLimiter(
		appCfg.DesignAI.RequestsPerMinute,
		appCfg.DesignAI.RequestsPerDay,
	)
	analyzer, err := designai.NewGeminiAnalyzer(
		context.Background(),
		appCfg.DesignAI.GeminiAPIKey,
		appCfg.DesignAI.Model,
		limiter,
	)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "analyzer_init_failed",
		}).Fatal(err)
	}

	service := designai.NewService(&designai.Config{
		Analyzer:        analyzer,
		Repository:      repo,
		Archive:         archiver,
		MaxImageSize:    appCfg.DesignAI.MaxImageSize,
		MaxDimension:    appCfg.DesignAI.MaxDimension,
		AllowedFormats:  appCfg.DesignAI.AllowedFormats,
		DownloadTimeout: time.Duration(appCfg.DesignAI.DownloadTimeout) * time.Second,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	var group sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	if appCfg.Storage.Expiration > 0 {
		designai.RunJanitor(ctx, &designai.JanitorConfig{
			Repository: repo,
			Expiration: appCfg.Storage.Expiration,
		}, &group)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appCfg.DesignAI.Port),
		Handler: service.Router(),
	}
	go func() {
		log.WithFields(log.Fields{
			"event": "listen",
			"addr":  srv.Addr,
		}).Info("designai api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen: %s\n", err)
		}
	}()

	<-done
	log.WithFields(log.Fields{
		"event": "ctx_cancel",
	}).Info("received syscall")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server Shutdown Failed:%+v", err)
	}
	group.Wait()
	if err := analyzer.Close(); err != nil {
		log.Error("analyzer close failed: ", err)
	}
	if pgRepo != nil {
		pgRepo.Close()
	}
}
