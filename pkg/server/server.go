/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/artifact"
	commonconfig "github.com/AMD-AIG-AIMA/artifact-manager/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/artifact-manager/pkg/database/client"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/embedding"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/handlers"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/s3"
	"github.com/AMD-AIG-AIMA/artifact-manager/pkg/vector"
)

type Server struct {
	opts       *Options
	dbClient   *dbclient.Client
	manager    *artifact.Manager
	httpServer *http.Server
	ctx        context.Context
	isInited   bool
}

// NewServer creates and returns a new Server instance.
func NewServer() (*Server, error) {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	s := &Server{
		opts: &Options{},
		ctx:  ctx,
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// init performs the initial setup of the server: flag parsing, configuration
// loading, the database client, the vector store and the artifact manager.
func (s *Server) init() error {
	gin.SetMode(gin.ReleaseMode)
	var err error
	if err = s.opts.InitFlags(); err != nil {
		klog.ErrorS(err, "failed to parse flags")
		return err
	}
	if err = s.initConfig(); err != nil {
		klog.ErrorS(err, "failed to init config")
		return err
	}

	if s.dbClient = dbclient.NewClient(); s.dbClient == nil {
		return fmt.Errorf("failed to new db client")
	}

	var vectors *vector.Store
	if commonconfig.IsVectorEnable() {
		vectors = vector.NewStore(s.dbClient.Gorm())
		if err = vectors.Migrate(s.ctx); err != nil {
			klog.ErrorS(err, "failed to migrate the vector store")
			return err
		}
	}

	var serverCreds *s3.Credentials
	if commonconfig.IsS3Enable() {
		if serverCreds, err = s3.ServerCredentials(); err != nil {
			klog.ErrorS(err, "failed to resolve the server s3 credentials")
			return err
		}
	}

	s.manager, err = artifact.NewManager(artifact.Options{
		DB:         s.dbClient,
		ServerS3:   serverCreds,
		Vectors:    vectors,
		Embeddings: embedding.NewServiceFromConfig("openai"),
	})
	if err != nil {
		klog.ErrorS(err, "failed to new the artifact manager")
		return err
	}
	s.isInited = true
	return nil
}

// Start begins serving HTTP requests and blocks until a stop signal arrives.
func (s *Server) Start() {
	if !s.isInited {
		klog.Errorf("please init artifact-manager first")
		return
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	klog.Infof("starting artifact-manager")
	go func() {
		if err := s.startHttpServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start http-server")
			os.Exit(-1)
		}
	}()

	<-s.ctx.Done()
	s.Stop()
}

// Stop gracefully shuts down the HTTP server and flushes logs.
func (s *Server) Stop() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	klog.Info("shutting down http server...")
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown httpserver")
		}
	}
	klog.Info("artifact-manager is stopped")
	klog.Flush()
}

// initConfig loads the server configuration from the specified config file path.
func (s *Server) initConfig() error {
	fullPath, err := filepath.Abs(s.opts.Config)
	if err != nil {
		return err
	}
	if err = commonconfig.LoadConfig(fullPath); err != nil {
		return fmt.Errorf("config path: %s, err: %v", fullPath, err)
	}
	return nil
}

// startHttpServer initializes the HTTP handlers and starts listening on the
// configured port.
func (s *Server) startHttpServer() error {
	if commonconfig.GetServerPort() <= 0 {
		return fmt.Errorf("the artifact-manager port is not defined")
	}
	handler := handlers.InitHttpHandlers(s.manager)
	addr := fmt.Sprintf(":%d", commonconfig.GetServerPort())
	s.httpServer = &http.Server{Addr: addr, Handler: handler}
	klog.Infof("http-server listen port: %d", commonconfig.GetServerPort())
	return s.httpServer.ListenAndServe()
}
