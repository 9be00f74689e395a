package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/value-logger/src/handler"
	"github.com/jiaming2012/value-logger/src/models"
	"github.com/jiaming2012/value-logger/src/session"
	"github.com/jiaming2012/value-logger/src/sheets"
	"github.com/jiaming2012/value-logger/src/utils"
)

func main() {
	ctx := context.Background()

	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("failed to init environment: %v", err)
	}

	config, err := utils.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store session.RemoteStore
	if srv, err := sheets.NewClientFromEnv(ctx); err != nil {
		log.Warnf("running without a remote store: %v", err)
	} else {
		store = sheets.NewRecordStore(srv, config.SpreadsheetID, config.SheetName)
	}

	sess := session.New(models.DefaultSchema(), store)
	sess.Load(ctx)

	router := mux.NewRouter()
	router.Use(handler.RequestID)
	handler.NewRecordsHandler(sess).Routes(router)

	srv := &http.Server{
		Addr:    config.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Infof("listening on %s", config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
