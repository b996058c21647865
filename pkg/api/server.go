/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api provides the HTTP surface over the device directory.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	srHTTP "github.com/carverauto/quantumdir/pkg/http"
	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

// DirectoryService is the directory contract the API exposes.
type DirectoryService interface {
	ListDevices(ctx context.Context) ([]models.DeviceSummary, []string, error)
	Describe(ctx context.Context, arn string) (*models.DeviceDetail, []string, error)
}

// APIServer routes directory requests.
type APIServer struct {
	router    *mux.Router
	directory DirectoryService
	logger    logger.Logger
	apiKey    string
}

// NewAPIServer creates an API server over the given directory.
func NewAPIServer(directory DirectoryService, log logger.Logger, options ...func(*APIServer)) *APIServer {
	s := &APIServer{
		router:    mux.NewRouter(),
		directory: directory,
		logger:    log,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithAPIKey requires the given API key on every request.
func WithAPIKey(apiKey string) func(*APIServer) {
	return func(server *APIServer) {
		server.apiKey = apiKey
	}
}

func (s *APIServer) setupRoutes() {
	s.router.Use(srHTTP.CommonMiddleware(s.logger))

	if s.apiKey != "" {
		s.router.Use(srHTTP.APIKeyMiddleware(s.apiKey, s.logger))
	}

	s.router.HandleFunc("/api/devices", s.handleDevices).Methods(http.MethodGet, http.MethodOptions)
}

// Router returns the configured handler.
func (s *APIServer) Router() http.Handler {
	return s.router
}
