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

//go:generate mockgen -destination=mock_directory.go -package=directory github.com/carverauto/quantumdir/pkg/directory ProviderClient

package directory

import (
	"context"

	"github.com/carverauto/quantumdir/pkg/models"
)

// ProviderClient is the per-region capability the directory consumes:
// paging through device summaries and fetching one device's full
// record. Transport and authentication live behind this interface.
type ProviderClient interface {
	// ListPage returns one page of device summaries for a region. An
	// empty cursor requests the first page; the caller loops until the
	// returned page carries no NextToken.
	ListPage(ctx context.Context, region, cursor string) (*models.ProviderDevicePage, error)

	// Describe fetches the full record for one device in a region.
	Describe(ctx context.Context, region, arn string) (*models.ProviderDeviceRecord, error)
}
