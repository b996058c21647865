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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/models"
)

const (
	regionalARN  = "arn:aws:braket:us-east-1::device/qpu/acme/lattice"
	simulatorARN = "arn:aws:braket:::device/quantum-simulator/acme/sv"
)

func newTestResolver(t *testing.T, regions []string) (*DeviceDetailResolver, *MockProviderClient, *StaticInfoCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := NewMockProviderClient(ctrl)

	config := Config{
		Regions:           regions,
		RegionConcurrency: len(regions),
		RegionTimeout:     models.Duration(5 * time.Second),
	}

	cache := NewStaticInfoCache()
	resolver := NewDeviceDetailResolver(NewRegionCatalog(regions), client, cache, config, logger.NewTestLogger())

	return resolver, client, cache
}

func latticeRecord(status string) *models.ProviderDeviceRecord {
	return &models.ProviderDeviceRecord{
		DeviceARN:    regionalARN,
		DeviceName:   "Lattice",
		DeviceType:   "QPU",
		DeviceStatus: status,
		ProviderName: "Acme",
		DeviceQueueInfo: []models.ProviderQueueInfo{
			{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "12", QueuePriority: "Normal"},
			{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "2", QueuePriority: "Priority"},
			{Queue: "JOBS_QUEUE", QueueSize: "1"},
		},
		DeviceCapabilities: `{"paradigm":{"qubitCount":25}}`,
	}
}

func TestDescribe_RejectsMalformedARN(t *testing.T) {
	resolver, _, _ := newTestResolver(t, []string{"us-east-1"})

	detail, warnings, err := resolver.Describe(context.Background(), "not-a-device-arn")
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Nil(t, warnings)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "invalid device ARN format")
}

func TestDescribe_RegionalARN(t *testing.T) {
	resolver, client, cache := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(latticeRecord("ONLINE"), nil)

	detail, warnings, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)
	require.Empty(t, warnings)

	assert.Equal(t, "Lattice", detail.DeviceName)
	assert.Equal(t, models.DeviceStatusOnline, detail.DeviceStatus)
	assert.Equal(t, "us-east-1", detail.Region)

	require.NotNil(t, detail.QueueDepth)
	assert.Equal(t, 12, detail.QueueDepth.Normal)
	assert.Equal(t, 2, detail.QueueDepth.Priority)
	assert.Equal(t, 1, detail.QueueDepth.Jobs)

	assert.JSONEq(t, `{"paradigm":{"qubitCount":25}}`, string(detail.Capabilities))
	assert.Equal(t, 1, cache.Len())
}

func TestDescribe_StatusIsFreshStaticIsCached(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1"})

	first := latticeRecord("ONLINE")

	// The second response differs in every static field. Only its status
	// may reach the caller.
	second := latticeRecord("OFFLINE")
	second.DeviceName = "Renamed"
	second.DeviceQueueInfo = nil
	second.DeviceCapabilities = `{"paradigm":{"qubitCount":99}}`

	gomock.InOrder(
		client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(first, nil),
		client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(second, nil),
	)

	detail, _, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOnline, detail.DeviceStatus)

	detail, warnings, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, models.DeviceStatusOffline, detail.DeviceStatus)
	assert.Equal(t, "Lattice", detail.DeviceName)
	require.NotNil(t, detail.QueueDepth)
	assert.Equal(t, 12, detail.QueueDepth.Normal)
	assert.JSONEq(t, `{"paradigm":{"qubitCount":25}}`, string(detail.Capabilities))
}

func TestDescribe_RegionalNotFound(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1"})

	client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(nil,
		&models.ProviderError{StatusCode: 404, Code: "ResourceNotFoundException", Message: "no such device"})

	detail, _, err := resolver.Describe(context.Background(), regionalARN)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "it may have been retired")
}

func TestDescribe_ProbePicksEarliestCatalogRegion(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	eastRecord := &models.ProviderDeviceRecord{
		DeviceARN: simulatorARN, DeviceName: "sv", DeviceType: "SIMULATOR", DeviceStatus: "ONLINE", ProviderName: "Acme",
	}
	westRecord := &models.ProviderDeviceRecord{
		DeviceARN: simulatorARN, DeviceName: "sv", DeviceType: "SIMULATOR", DeviceStatus: "ONLINE", ProviderName: "Acme",
	}

	client.EXPECT().Describe(gomock.Any(), "us-east-1", simulatorARN).Return(eastRecord, nil)
	client.EXPECT().Describe(gomock.Any(), "us-west-2", simulatorARN).Return(westRecord, nil)

	detail, warnings, err := resolver.Describe(context.Background(), simulatorARN)
	require.NoError(t, err)
	require.Empty(t, warnings)
	assert.Equal(t, "us-east-1", detail.Region)
}

func TestDescribe_ProbeFallsThroughNotFound(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	notFound := &models.ProviderError{StatusCode: 404, Code: "ResourceNotFoundException", Message: "no such device"}

	client.EXPECT().Describe(gomock.Any(), "us-east-1", simulatorARN).Return(nil, notFound)
	client.EXPECT().Describe(gomock.Any(), "us-west-2", simulatorARN).Return(&models.ProviderDeviceRecord{
		DeviceARN: simulatorARN, DeviceName: "sv", DeviceType: "SIMULATOR", DeviceStatus: "ONLINE", ProviderName: "Acme",
	}, nil)

	detail, _, err := resolver.Describe(context.Background(), simulatorARN)
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", detail.Region)
}

func TestDescribe_ProbeExhaustedReportsLastCandidateFailure(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	client.EXPECT().Describe(gomock.Any(), "us-east-1", simulatorARN).Return(nil,
		&models.ProviderError{StatusCode: 404, Code: "ResourceNotFoundException", Message: "no such device"})
	client.EXPECT().Describe(gomock.Any(), "us-west-2", simulatorARN).Return(nil,
		&models.ProviderError{StatusCode: 500, Code: "InternalServiceException", Message: "west melted"})

	detail, _, err := resolver.Describe(context.Background(), simulatorARN)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "not found in any region")
	assert.Contains(t, err.Error(), "last candidate failure: west melted")
}

func TestDescribe_ProbeAllNotFound(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	notFound := &models.ProviderError{StatusCode: 404, Code: "ResourceNotFoundException", Message: "no such device"}

	client.EXPECT().Describe(gomock.Any(), "us-east-1", simulatorARN).Return(nil, notFound)
	client.EXPECT().Describe(gomock.Any(), "us-west-2", simulatorARN).Return(nil, notFound)

	_, _, err := resolver.Describe(context.Background(), simulatorARN)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.NotContains(t, err.Error(), "last candidate failure")
}

func TestDescribe_ProbeAuthAborts(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1", "us-west-2"})

	client.EXPECT().Describe(gomock.Any(), "us-east-1", simulatorARN).Return(nil,
		&models.ProviderError{StatusCode: 401, Code: "ExpiredTokenException", Message: "token expired"})
	client.EXPECT().Describe(gomock.Any(), "us-west-2", simulatorARN).Return(&models.ProviderDeviceRecord{
		DeviceARN: simulatorARN, DeviceName: "sv", DeviceType: "SIMULATOR", DeviceStatus: "ONLINE", ProviderName: "Acme",
	}, nil).AnyTimes()

	detail, _, err := resolver.Describe(context.Background(), simulatorARN)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, KindAuth, KindOf(err))
}

func TestDescribe_MalformedQueueSizeDegrades(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1"})

	record := latticeRecord("ONLINE")
	record.DeviceQueueInfo = []models.ProviderQueueInfo{
		{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "lots", QueuePriority: "Normal"},
	}

	client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(record, nil)

	detail, warnings, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)

	// Queue depth is dropped with a warning; capabilities survive.
	assert.Nil(t, detail.QueueDepth)
	assert.NotEmpty(t, detail.Capabilities)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "queue depth unavailable")
}

func TestDescribe_MalformedCapabilitiesDegrades(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1"})

	record := latticeRecord("ONLINE")
	record.DeviceCapabilities = `{"paradigm":`

	client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(record, nil)

	detail, warnings, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)

	assert.Nil(t, detail.Capabilities)
	require.NotNil(t, detail.QueueDepth)
	assert.Equal(t, 12, detail.QueueDepth.Normal)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "capabilities unavailable")
}

func TestQueueDepthFromRecord(t *testing.T) {
	tests := []struct {
		name     string
		entries  []models.ProviderQueueInfo
		expected *models.QueueDepth
		wantErr  bool
	}{
		{
			name:     "no queue info",
			entries:  nil,
			expected: nil,
		},
		{
			name: "full set",
			entries: []models.ProviderQueueInfo{
				{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "7", QueuePriority: "Normal"},
				{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "3", QueuePriority: "Priority"},
				{Queue: "JOBS_QUEUE", QueueSize: "2"},
			},
			expected: &models.QueueDepth{Normal: 7, Priority: 3, Jobs: 2},
		},
		{
			name: "missing priority defaults to normal",
			entries: []models.ProviderQueueInfo{
				{Queue: "QUANTUM_TASKS_QUEUE", QueueSize: "5"},
			},
			expected: &models.QueueDepth{Normal: 5},
		},
		{
			name: "malformed size",
			entries: []models.ProviderQueueInfo{
				{Queue: "JOBS_QUEUE", QueueSize: "many"},
			},
			wantErr: true,
		},
		{
			name: "unknown queue class",
			entries: []models.ProviderQueueInfo{
				{Queue: "MYSTERY_QUEUE", QueueSize: "1"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, err := queueDepthFromRecord(tt.entries)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, depth)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, depth)
		})
	}
}

func TestCapabilitiesFromRecord(t *testing.T) {
	caps, err := capabilitiesFromRecord(`{"service":{"shotsRange":[1,1000]}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"service":{"shotsRange":[1,1000]}}`, string(caps))

	caps, err = capabilitiesFromRecord("")
	require.NoError(t, err)
	assert.Nil(t, caps)

	_, err = capabilitiesFromRecord("{broken")
	assert.ErrorIs(t, err, errMalformedCapabilities)
}

func TestRegionFromARN(t *testing.T) {
	assert.Equal(t, "us-east-1", regionFromARN(regionalARN))
	assert.Equal(t, "", regionFromARN(simulatorARN))
	assert.Equal(t, "", regionFromARN("arn:aws:braket"))
}

func TestDescribe_CachedCapabilitiesAreIsolated(t *testing.T) {
	resolver, client, _ := newTestResolver(t, []string{"us-east-1"})

	client.EXPECT().Describe(gomock.Any(), "us-east-1", regionalARN).Return(latticeRecord("ONLINE"), nil).Times(2)

	first, _, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)

	// Mutating a returned blob must not corrupt later reads.
	first.Capabilities[0] = 'X'

	second, _, err := resolver.Describe(context.Background(), regionalARN)
	require.NoError(t, err)
	assert.True(t, json.Valid(second.Capabilities))
}
