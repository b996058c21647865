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
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

// arnPrefix is the required lexical prefix of every device identifier.
const arnPrefix = "arn:aws:braket:"

const (
	queueQuantumTasks = "QUANTUM_TASKS_QUEUE"
	queueJobs         = "JOBS_QUEUE"

	queuePriorityNormal   = "Normal"
	queuePriorityPriority = "Priority"
)

var errMalformedCapabilities = errors.New("capabilities blob is not valid JSON")

// DeviceDetailResolver resolves one device identifier to its full
// detail. Static fields come from the cache after the first successful
// resolution; status is refetched on every call.
type DeviceDetailResolver struct {
	catalog *RegionCatalog
	client  ProviderClient
	cache   *StaticInfoCache
	config  Config
	logger  logger.Logger
}

// NewDeviceDetailResolver creates a resolver backed by the given cache.
func NewDeviceDetailResolver(
	catalog *RegionCatalog,
	client ProviderClient,
	cache *StaticInfoCache,
	config Config,
	log logger.Logger,
) *DeviceDetailResolver {
	return &DeviceDetailResolver{
		catalog: catalog,
		client:  client,
		cache:   cache,
		config:  config,
		logger:  log,
	}
}

// Describe resolves a device ARN to its detail plus any degradation
// warnings. The identifier is validated before any provider
// interaction; region-less identifiers are probed across the catalog
// in declared order.
func (r *DeviceDetailResolver) Describe(ctx context.Context, arn string) (*models.DeviceDetail, []string, error) {
	if !strings.HasPrefix(arn, arnPrefix) {
		return nil, nil, validationErrorf("invalid device ARN format: %s", arn)
	}

	region := regionFromARN(arn)

	var (
		record *models.ProviderDeviceRecord
		err    error
	)

	if region != "" {
		record, err = r.describeInRegion(ctx, region, arn)
		if err != nil {
			cls := Classify(err)
			if cls.Kind == KindNotFound {
				return nil, nil, notFoundErrorf("device not found (it may have been retired): %s", arn)
			}

			return nil, nil, cls
		}
	} else {
		record, region, err = r.probeRegions(ctx, arn)
		if err != nil {
			return nil, nil, Classify(err)
		}
	}

	// Status is the only volatile field: always taken from the
	// response just obtained, never from the cache.
	status := models.ParseDeviceStatus(record.DeviceStatus)

	if entry, ok := r.cache.Get(arn); ok {
		return entry.Detail(status), nil, nil
	}

	detail, warnings := r.buildDetail(record, region, status)

	winner, stored := r.cache.PutIfAbsent(arn, models.StaticFrom(detail))
	if !stored {
		// Lost a populate race; the winner's projection is the one
		// every caller must observe from now on.
		return winner.Detail(status), warnings, nil
	}

	r.logger.Debug().Str("device_arn", arn).Str("region", region).Msg("Cached static device info")

	return detail, warnings, nil
}

// describeInRegion issues one describe call bounded by the per-region
// timeout.
func (r *DeviceDetailResolver) describeInRegion(ctx context.Context, region, arn string) (*models.ProviderDeviceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.config.RegionTimeout))
	defer cancel()

	record, err := r.client.Describe(ctx, region, arn)
	if err != nil {
		return nil, fmt.Errorf("describing %s in region %s: %w", arn, region, err)
	}

	return record, nil
}

// probeRegions resolves a region-less identifier by describing it in
// every catalog region concurrently and selecting the success from the
// earliest-declared region. Not-found means "try the next region"; any
// other regional failure is recorded as a candidate failure but does
// not abort the probe, except auth, which aborts everything.
func (r *DeviceDetailResolver) probeRegions(ctx context.Context, arn string) (*models.ProviderDeviceRecord, string, error) {
	regions := r.catalog.Regions()

	records := make([]*models.ProviderDeviceRecord, len(regions))
	failures := make([]*Error, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.RegionConcurrency)

	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			record, err := r.describeInRegion(gctx, region, arn)
			if err != nil {
				cls := Classify(err)
				if cls.Kind == KindAuth {
					return cls
				}

				if cls.Kind != KindNotFound {
					failures[i] = cls
				}

				return nil
			}

			records[i] = record

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	for i, region := range regions {
		if records[i] != nil {
			return records[i], region, nil
		}
	}

	var lastFailure *Error

	for i := range regions {
		if failures[i] != nil {
			lastFailure = failures[i]
		}
	}

	if lastFailure != nil {
		return nil, "", &Error{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("device not found in any region: %s (last candidate failure: %s)", arn, lastFailure.Message),
			Err:     lastFailure,
		}
	}

	return nil, "", notFoundErrorf("device not found in any region: %s", arn)
}

// buildDetail constructs the full detail from a raw record. The queue
// depth and capabilities extractions are independently fault-contained:
// a failure in one appends a warning and omits the field without
// touching the other or failing the call.
func (r *DeviceDetailResolver) buildDetail(record *models.ProviderDeviceRecord, region string, status models.DeviceStatus) (*models.DeviceDetail, []string) {
	detail := &models.DeviceDetail{
		DeviceSummary: models.DeviceSummary{
			DeviceARN:    record.DeviceARN,
			DeviceName:   record.DeviceName,
			DeviceType:   record.DeviceType,
			DeviceStatus: status,
			ProviderName: record.ProviderName,
			Region:       region,
		},
	}

	var warnings []string

	queueDepth, err := queueDepthFromRecord(record.DeviceQueueInfo)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("queue depth unavailable for %s: %s", record.DeviceARN, err))
	} else {
		detail.QueueDepth = queueDepth
	}

	capabilities, err := capabilitiesFromRecord(record.DeviceCapabilities)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("capabilities unavailable for %s: %s", record.DeviceARN, err))
	} else {
		detail.Capabilities = capabilities
	}

	return detail, warnings
}

// queueDepthFromRecord decomposes the provider's queue entries into the
// normal/priority task counts and the job count. A nil result with nil
// error means the device reports no queue information.
func queueDepthFromRecord(entries []models.ProviderQueueInfo) (*models.QueueDepth, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	depth := &models.QueueDepth{}

	for i := range entries {
		entry := &entries[i]

		size, err := strconv.Atoi(entry.QueueSize)
		if err != nil {
			return nil, fmt.Errorf("malformed queue size %q for queue %s: %w", entry.QueueSize, entry.Queue, err)
		}

		switch entry.Queue {
		case queueQuantumTasks:
			if entry.QueuePriority == queuePriorityPriority {
				depth.Priority = size
			} else {
				depth.Normal = size
			}
		case queueJobs:
			depth.Jobs = size
		default:
			return nil, fmt.Errorf("unknown queue class %q", entry.Queue)
		}
	}

	return depth, nil
}

// capabilitiesFromRecord validates the opaque capabilities blob. The
// blob is kept serialized; it only has to be well-formed JSON.
func capabilitiesFromRecord(blob string) (json.RawMessage, error) {
	if blob == "" {
		return nil, nil
	}

	if !json.Valid([]byte(blob)) {
		return nil, errMalformedCapabilities
	}

	return json.RawMessage(blob), nil
}

// regionFromARN extracts the region segment of a device ARN. Simulator
// identifiers leave the segment empty.
func regionFromARN(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 {
		return ""
	}

	return parts[3]
}
