// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// Feed Server exposes cursor paginated article and activity feeds.
package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/edrlab/feed-server/pkg/conf"
	"github.com/edrlab/feed-server/pkg/stor"
)

// Server context
type Server struct {
	*conf.Config
	stor.Store
	Router *chi.Mux
}

func main() {

	s := Server{}

	configFile := os.Getenv("EDRLAB_FEEDSERVER_CONFIG")
	if configFile == "" {
		panic("Failed to retrieve the configuration file path.")
	}

	c, err := conf.Init(configFile)
	if err != nil {
		panic("Failed to read the configuration.")
	}

	s.Config = c
	setLogLevel(c.LogLevel)

	s.Initialize()

	// apply log level changes without a restart
	go watchConfig(configFile)

	log.Info("The server is ready.")

	s.Run(":" + strconv.Itoa(c.Port))
}

// Initialize sets up the database and routes
func (s *Server) Initialize() {
	var err error

	// Setup the database
	s.Store, err = stor.Init(s.Config.Dsn)
	if err != nil {
		panic("Database setup failed.")
	}

	// Setup the routes
	s.Router = s.setRoutes()
}

// Run starts the server
func (s *Server) Run(port string) {
	log.Fatal(http.ListenAndServe(port, s.Router))
}

// setLogLevel maps the configured level to logrus; unknown values keep the default
func setLogLevel(level string) {
	if level == "" {
		return
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, keeping the current level", level)
		return
	}
	log.SetLevel(lvl)
}

// watchConfig watches the configuration file and applies log level changes on the fly.
func watchConfig(configFile string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Errorf("Error creating watcher: %v", err)
		return
	}
	defer watcher.Close()

	// the directory is watched, as editors replace files on save
	err = watcher.Add(filepath.Dir(configFile))
	if err != nil {
		log.Errorf("Error adding directory: %v", err)
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != configFile {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				c, err := conf.Init(configFile)
				if err != nil {
					log.Warnf("Configuration reload failed: %v", err)
					continue
				}
				log.Infof("Configuration reloaded, log level %q", c.LogLevel)
				setLogLevel(c.LogLevel)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("Watcher error: %v", err)
		}
	}
}
