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

// Package directory aggregates quantum compute devices scattered across
// the provider's regional endpoints into one consistent view. Static
// device metadata is cached for the process lifetime; the volatile
// status field is fetched fresh on every describe.
package directory

import (
	"context"

	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

// Directory is the aggregated device view exposed to the outer request
// layer.
type Directory struct {
	lister   *RegionFanoutLister
	resolver *DeviceDetailResolver
	cache    *StaticInfoCache
	logger   logger.Logger
}

// New builds a Directory over the given provider client. The static
// info cache is created here and shared by every describe call for the
// life of the process.
func New(config Config, client ProviderClient, log logger.Logger) (*Directory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	catalog := NewRegionCatalog(config.Regions)
	cache := NewStaticInfoCache()

	return &Directory{
		lister:   NewRegionFanoutLister(catalog, client, config, log),
		resolver: NewDeviceDetailResolver(catalog, client, cache, config, log),
		cache:    cache,
		logger:   log,
	}, nil
}

// ListDevices returns every listable device across all regions, plus
// advisory warnings for regions that degraded.
func (d *Directory) ListDevices(ctx context.Context) ([]models.DeviceSummary, []string, error) {
	return d.lister.ListDevices(ctx)
}

// Describe resolves one device identifier to its full detail with a
// fresh status.
func (d *Directory) Describe(ctx context.Context, arn string) (*models.DeviceDetail, []string, error) {
	return d.resolver.Describe(ctx, arn)
}

// ExportStatic lists all devices and resolves each to its static
// projection, including the qubit count when the capabilities blob
// carries one. Per-device resolution failures degrade to warnings so a
// single broken device cannot sink the export.
func (d *Directory) ExportStatic(ctx context.Context) ([]models.StaticDeviceExport, []string, error) {
	summaries, warnings, err := d.ListDevices(ctx)
	if err != nil {
		return nil, nil, err
	}

	exports := make([]models.StaticDeviceExport, 0, len(summaries))

	for i := range summaries {
		summary := &summaries[i]

		detail, describeWarnings, err := d.Describe(ctx, summary.DeviceARN)
		if err != nil {
			cls := Classify(err)
			if cls.Kind == KindAuth {
				return nil, nil, cls
			}

			warnings = append(warnings, "export skipped "+summary.DeviceARN+": "+cls.Message)

			continue
		}

		warnings = append(warnings, describeWarnings...)

		export := models.StaticDeviceExport{
			DeviceARN:    detail.DeviceARN,
			DeviceName:   detail.DeviceName,
			DeviceType:   detail.DeviceType,
			ProviderName: detail.ProviderName,
		}

		if count, ok := QubitCount(detail.Capabilities); ok {
			export.QubitCount = &count
		}

		exports = append(exports, export)
	}

	return exports, warnings, nil
}

// CacheSize reports how many devices have static info cached.
func (d *Directory) CacheSize() int {
	return d.cache.Len()
}
