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
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

// RegionFanoutLister aggregates device listings from every region in
// the catalog. Region-scoped failures degrade to warnings; an auth
// failure aborts the whole fan-out because credentials are shared
// across regions.
type RegionFanoutLister struct {
	catalog *RegionCatalog
	client  ProviderClient
	config  Config
	logger  logger.Logger
}

// NewRegionFanoutLister creates a lister over the given catalog.
func NewRegionFanoutLister(catalog *RegionCatalog, client ProviderClient, config Config, log logger.Logger) *RegionFanoutLister {
	return &RegionFanoutLister{
		catalog: catalog,
		client:  client,
		config:  config,
		logger:  log,
	}
}

// ListDevices queries every catalog region concurrently and merges the
// results. The returned summaries preserve discovery order: catalog
// order first, then per-region page order. Devices whose status is not
// ONLINE or OFFLINE are dropped. Warnings carry one line per degraded
// region, in catalog order.
func (l *RegionFanoutLister) ListDevices(ctx context.Context) ([]models.DeviceSummary, []string, error) {
	regions := l.catalog.Regions()

	var mu sync.Mutex

	collected := make(map[string][]models.DeviceSummary, len(regions))
	failed := make(map[string]*Error, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.RegionConcurrency)

	for _, region := range regions {
		region := region
		g.Go(func() error {
			summaries, err := l.listRegion(gctx, region)
			if err != nil {
				cls := Classify(err)
				if cls.Kind == KindAuth {
					return cls
				}

				l.logger.Warn().
					Str("region", region).
					Str("kind", string(cls.Kind)).
					Msg("Region listing degraded")

				mu.Lock()
				failed[region] = cls
				mu.Unlock()

				return nil
			}

			mu.Lock()
			collected[region] = summaries
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, Classify(err)
	}

	var (
		devices  []models.DeviceSummary
		warnings []string
	)

	for _, region := range regions {
		devices = append(devices, collected[region]...)

		if cls := failed[region]; cls != nil {
			warnings = append(warnings, fmt.Sprintf("region %s unavailable: %s", region, cls.Message))
		}
	}

	if l.config.DedupeDevices {
		devices = dedupeByARN(devices)
	}

	l.logger.Info().
		Int("devices", len(devices)).
		Int("regions", len(regions)).
		Int("degraded_regions", len(failed)).
		Msg("Listed devices")

	return devices, warnings, nil
}

// listRegion pages through one region's device search under the
// per-region timeout.
func (l *RegionFanoutLister) listRegion(ctx context.Context, region string) ([]models.DeviceSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(l.config.RegionTimeout))
	defer cancel()

	var out []models.DeviceSummary

	cursor := ""

	for {
		page, err := l.client.ListPage(ctx, region, cursor)
		if err != nil {
			return nil, fmt.Errorf("listing region %s: %w", region, err)
		}

		for i := range page.Devices {
			raw := &page.Devices[i]

			status := models.ParseDeviceStatus(raw.DeviceStatus)
			if !status.Listable() {
				continue
			}

			out = append(out, models.DeviceSummary{
				DeviceARN:    raw.DeviceARN,
				DeviceName:   raw.DeviceName,
				DeviceType:   raw.DeviceType,
				DeviceStatus: status,
				ProviderName: raw.ProviderName,
				Region:       region,
			})
		}

		if page.NextToken == "" {
			return out, nil
		}

		cursor = page.NextToken
	}
}

// dedupeByARN keeps the first discovery of each device ARN.
func dedupeByARN(devices []models.DeviceSummary) []models.DeviceSummary {
	seen := make(map[string]struct{}, len(devices))
	out := devices[:0]

	for _, d := range devices {
		if _, ok := seen[d.DeviceARN]; ok {
			continue
		}

		seen[d.DeviceARN] = struct{}{}
		out = append(out, d)
	}

	return out
}
