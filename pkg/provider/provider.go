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

// Package provider implements the regional device-provider client
// consumed by the directory.
package provider

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

const defaultPageSize = 100

var errMissingEndpointTemplate = errors.New("endpoint_template is required")

// Config describes how to reach the provider's regional endpoints.
type Config struct {
	// EndpointTemplate is instantiated per region, e.g.
	// "https://braket.%s.amazonaws.com".
	EndpointTemplate string `json:"endpoint_template"`

	// Credentials carries the provider credentials; "api_token" is the
	// bearer token sent on every request.
	Credentials map[string]string `json:"credentials"`

	// PageSize is the number of devices requested per search page.
	PageSize int `json:"page_size,omitempty"`

	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty"`
}

// Validate checks the required fields and applies defaults.
func (c *Config) Validate() error {
	if c.EndpointTemplate == "" {
		return errMissingEndpointTemplate
	}

	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}

	return nil
}

// Client is an HTTP JSON client for the provider's regional REST API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a provider client from config.
func NewClient(config Config, log logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	//nolint:gosec // InsecureSkipVerify is an explicit test-environment knob
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.InsecureSkipVerify,
			},
		},
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     log,
	}, nil
}

type searchDevicesRequest struct {
	MaxResults int    `json:"maxResults"`
	NextToken  string `json:"nextToken,omitempty"`
}

// ListPage fetches one page of device summaries from a region.
func (c *Client) ListPage(ctx context.Context, region, cursor string) (*models.ProviderDevicePage, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchDevicesRequest{
		MaxResults: c.config.PageSize,
		NextToken:  cursor,
	})
	if err != nil {
		return nil, err
	}

	reqURL := c.endpoint(region) + "/devices"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	var page models.ProviderDevicePage

	if err := c.do(req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Describe fetches the full record for one device in a region.
func (c *Client) Describe(ctx context.Context, region, arn string) (*models.ProviderDeviceRecord, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	reqURL := c.endpoint(region) + "/device/" + url.PathEscape(arn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	var record models.ProviderDeviceRecord

	if err := c.do(req, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) endpoint(region string) string {
	return fmt.Sprintf(c.config.EndpointTemplate, region)
}

// checkCredentials surfaces absent credentials as an auth-class
// provider error before any network interaction; retrying per region
// cannot fix a missing token.
func (c *Client) checkCredentials() error {
	if c.config.Credentials["api_token"] == "" {
		return &models.ProviderError{
			StatusCode: http.StatusUnauthorized,
			Code:       "MissingAuthenticationTokenException",
			Message:    "no provider credentials configured",
		}
	}

	return nil
}

func (c *Client) do(req *http.Request, dst interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.config.Credentials["api_token"])
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}

	return nil
}

func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
