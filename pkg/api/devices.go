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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carverauto/quantumdir/pkg/directory"
	"github.com/carverauto/quantumdir/pkg/models"
)

type listResponse struct {
	Status   string                 `json:"status"`
	Devices  []models.DeviceSummary `json:"devices"`
	Warnings []string               `json:"warnings,omitempty"`
}

type deviceResponse struct {
	Status   string               `json:"status"`
	Device   *models.DeviceDetail `json:"device"`
	Warnings []string             `json:"warnings,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary List or describe devices
// @Description Without query params, lists all devices across regions.
// @Description With ?deviceArn=<arn>, returns the detail of one device.
// @Tags Devices
// @Produce json
// @Param deviceArn query string false "Device ARN"
// @Success 200 {object} listResponse
// @Failure 400,401,403,404,500,503 {object} errorResponse
// @Router /api/devices [get]
func (s *APIServer) handleDevices(w http.ResponseWriter, r *http.Request) {
	arn := r.URL.Query().Get("deviceArn")

	if arn == "" {
		s.listDevices(w, r)
		return
	}

	s.describeDevice(w, r, arn)
}

func (s *APIServer) listDevices(w http.ResponseWriter, r *http.Request) {
	devices, warnings, err := s.directory.ListDevices(r.Context())
	if err != nil {
		s.writeClassifiedError(w, err)
		return
	}

	if devices == nil {
		devices = []models.DeviceSummary{}
	}

	s.writeJSON(w, http.StatusOK, listResponse{
		Status:   "success",
		Devices:  devices,
		Warnings: warnings,
	})
}

func (s *APIServer) describeDevice(w http.ResponseWriter, r *http.Request, arn string) {
	detail, warnings, err := s.directory.Describe(r.Context(), arn)
	if err != nil {
		s.writeClassifiedError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, deviceResponse{
		Status:   "success",
		Device:   detail,
		Warnings: warnings,
	})
}

func (s *APIServer) writeClassifiedError(w http.ResponseWriter, err error) {
	cls := directory.Classify(err)

	s.logger.Error().
		Err(err).
		Str("kind", string(cls.Kind)).
		Msg("Directory request failed")

	s.writeJSON(w, httpStatusFor(cls), errorResponse{
		Status:  "error",
		Message: cls.Message,
	})
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// httpStatusFor maps the error taxonomy onto HTTP status codes. A
// server_error reports 503 when the provider itself failed or timed
// out, 500 otherwise.
func httpStatusFor(cls *directory.Error) int {
	switch cls.Kind {
	case directory.KindValidation:
		return http.StatusBadRequest
	case directory.KindAuth:
		return http.StatusUnauthorized
	case directory.KindPermission:
		return http.StatusForbidden
	case directory.KindNotFound:
		return http.StatusNotFound
	case directory.KindServerError:
		if providerSideFailure(cls) {
			return http.StatusServiceUnavailable
		}

		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func providerSideFailure(cls *directory.Error) bool {
	var perr *models.ProviderError
	if errors.As(cls.Err, &perr) && perr.StatusCode >= 500 {
		return true
	}

	return errors.Is(cls.Err, context.DeadlineExceeded)
}
