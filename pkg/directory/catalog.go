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

// DefaultRegions is the provider's public region set. The order matters:
// it is the probe order for device identifiers that carry no region.
var DefaultRegions = []string{
	"us-east-1",
	"us-west-1",
	"us-west-2",
	"eu-west-2",
	"eu-north-1",
}

// RegionCatalog is the fixed, ordered set of regions the directory
// aggregates over.
type RegionCatalog struct {
	regions []string
}

// NewRegionCatalog builds a catalog from the given regions, preserving
// order and dropping duplicates. An empty input yields DefaultRegions.
func NewRegionCatalog(regions []string) *RegionCatalog {
	if len(regions) == 0 {
		regions = DefaultRegions
	}

	seen := make(map[string]struct{}, len(regions))
	out := make([]string, 0, len(regions))

	for _, region := range regions {
		if region == "" {
			continue
		}

		if _, ok := seen[region]; ok {
			continue
		}

		seen[region] = struct{}{}
		out = append(out, region)
	}

	return &RegionCatalog{regions: out}
}

// Regions returns the catalog's regions in declared order.
func (c *RegionCatalog) Regions() []string {
	return append([]string(nil), c.regions...)
}

// Size returns the number of regions in the catalog.
func (c *RegionCatalog) Size() int {
	return len(c.regions)
}

// Contains reports whether the catalog declares the given region.
func (c *RegionCatalog) Contains(region string) bool {
	for _, r := range c.regions {
		if r == region {
			return true
		}
	}

	return false
}
