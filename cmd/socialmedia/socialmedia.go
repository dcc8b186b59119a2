package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/furzing/techarabihackathon/chassis/logging"

	"github.com/furzing/techarabihackathon/chassis/config"
	"github.com/furzing/techarabihackathon/socialmedia"
)

func main() {
	appCfg, err := config.Read()
	if err != nil {
		log.WithFields(log.Fields{
			"event": "config_read_failed",
		}).Fatal(err)
	}
	log.Init("socialmedia", appCfg.SocialMedia.LogLevel)

	llm, err := socialmedia.NewGroqClient(appCfg.SocialMedia.GroqAPIKey, appCfg.SocialMedia.Model)
	if err != nil {
		log.WithFields(log.Fields{
			"event": "llm_init_failed",
		}).Fatal(err)
	}
	service := socialmedia.NewService(socialmedia.NewManager(llm))
	log.WithFields(log.Fields{
		"event": "init_service",
	}).Info("service initialized")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appCfg.SocialMedia.Port),
		Handler: service.Router(),
	}
	go func() {
		log.WithFields(log.Fields{
			"event": "listen",
			"addr":  srv.Addr,
		}).Info("socialmedia api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen: %s\n", err)
		}
	}()

	<-done
	log.WithFields(log.Fields{
		"event": "ctx_cancel",
	}).Info("received syscall")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server Shutdown Failed:%+v", err)
	}
}
