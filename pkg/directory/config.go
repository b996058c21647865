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

package directory

import (
	"time"

	"github.com/carverauto/quantumdir/pkg/models"
)

const (
	defaultRegionTimeout     = 10 * time.Second
	defaultRegionConcurrency = 4
)

// Config controls the directory's aggregation behavior.
type Config struct {
	// Regions overrides the built-in region catalog. Order defines the
	// probe order for region-less device identifiers.
	Regions []string `json:"regions,omitempty"`

	// RegionConcurrency caps the number of regions queried at once
	// during a fan-out. Zero means the smaller of the catalog size and
	// the built-in default.
	RegionConcurrency int `json:"region_concurrency,omitempty"`

	// RegionTimeout bounds each per-region provider call so one
	// unresponsive region cannot stall the aggregate response.
	RegionTimeout models.Duration `json:"region_timeout,omitempty"`

	// DedupeDevices drops repeat appearances of the same device ARN
	// during listing, keeping the first discovery. Off by default: the
	// provider echoes region-less devices from several regional
	// searches and each regional record is treated as authoritative.
	DedupeDevices bool `json:"dedupe_devices,omitempty"`
}

// Validate normalizes zero values to defaults.
func (c *Config) Validate() error {
	if len(c.Regions) == 0 {
		c.Regions = append([]string(nil), DefaultRegions...)
	}

	if time.Duration(c.RegionTimeout) <= 0 {
		c.RegionTimeout = models.Duration(defaultRegionTimeout)
	}

	if c.RegionConcurrency <= 0 {
		c.RegionConcurrency = defaultRegionConcurrency
		if len(c.Regions) < c.RegionConcurrency {
			c.RegionConcurrency = len(c.Regions)
		}
	}

	return nil
}
