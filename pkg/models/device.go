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

// Package models contains the shared data types for the quantum device directory.
package models

import "encoding/json"

// DeviceStatus is the provider-reported availability of a device.
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "ONLINE"
	DeviceStatusOffline DeviceStatus = "OFFLINE"
	DeviceStatusRetired DeviceStatus = "RETIRED"
	DeviceStatusUnknown DeviceStatus = "UNKNOWN"
)

// ParseDeviceStatus normalizes a raw provider status string. Anything the
// directory does not recognize maps to UNKNOWN rather than leaking raw
// provider values to callers.
func ParseDeviceStatus(raw string) DeviceStatus {
	switch DeviceStatus(raw) {
	case DeviceStatusOnline, DeviceStatusOffline, DeviceStatusRetired:
		return DeviceStatus(raw)
	default:
		return DeviceStatusUnknown
	}
}

// Listable reports whether a device with this status appears in listings.
func (s DeviceStatus) Listable() bool {
	return s == DeviceStatusOnline || s == DeviceStatusOffline
}

// DeviceSummary is the listing projection of a device. Summaries are
// ephemeral; they are never merged into the static-info cache.
type DeviceSummary struct {
	DeviceARN    string       `json:"deviceArn"`
	DeviceName   string       `json:"deviceName"`
	DeviceType   string       `json:"deviceType"`
	DeviceStatus DeviceStatus `json:"deviceStatus"`
	ProviderName string       `json:"providerName"`
	Region       string       `json:"region,omitempty"` // region the device was discovered in
}

// QueueDepth reports the task and job backlog on a device.
type QueueDepth struct {
	Normal   int `json:"normal"`
	Priority int `json:"priority"`
	Jobs     int `json:"jobs"`
}

// DeviceDetail is the full view of a device. Every field except
// DeviceStatus is static once observed; DeviceStatus is refetched on
// every describe call.
type DeviceDetail struct {
	DeviceSummary

	QueueDepth   *QueueDepth     `json:"queueDepth,omitempty"`
	Capabilities json.RawMessage `json:"capabilities,omitempty"`
}

// CacheEntry is the static projection of a DeviceDetail, everything
// except the volatile status field.
type CacheEntry struct {
	DeviceARN    string
	DeviceName   string
	DeviceType   string
	ProviderName string
	Region       string
	QueueDepth   *QueueDepth
	Capabilities json.RawMessage
}

// StaticFrom projects the static fields of a detail into a cache entry.
func StaticFrom(d *DeviceDetail) *CacheEntry {
	if d == nil {
		return nil
	}

	entry := &CacheEntry{
		DeviceARN:    d.DeviceARN,
		DeviceName:   d.DeviceName,
		DeviceType:   d.DeviceType,
		ProviderName: d.ProviderName,
		Region:       d.Region,
	}

	if d.QueueDepth != nil {
		qd := *d.QueueDepth
		entry.QueueDepth = &qd
	}

	if len(d.Capabilities) > 0 {
		entry.Capabilities = append(json.RawMessage(nil), d.Capabilities...)
	}

	return entry
}

// Clone returns a deep copy of the entry.
func (e *CacheEntry) Clone() *CacheEntry {
	if e == nil {
		return nil
	}

	dst := *e

	if e.QueueDepth != nil {
		qd := *e.QueueDepth
		dst.QueueDepth = &qd
	}

	if len(e.Capabilities) > 0 {
		dst.Capabilities = append(json.RawMessage(nil), e.Capabilities...)
	}

	return &dst
}

// Detail merges the cached static fields with a freshly fetched status.
func (e *CacheEntry) Detail(status DeviceStatus) *DeviceDetail {
	if e == nil {
		return nil
	}

	c := e.Clone()

	return &DeviceDetail{
		DeviceSummary: DeviceSummary{
			DeviceARN:    c.DeviceARN,
			DeviceName:   c.DeviceName,
			DeviceType:   c.DeviceType,
			DeviceStatus: status,
			ProviderName: c.ProviderName,
			Region:       c.Region,
		},
		QueueDepth:   c.QueueDepth,
		Capabilities: c.Capabilities,
	}
}

// StaticDeviceExport is the frontend export shape: static fields only,
// with the qubit count dug out of the capabilities blob when present.
type StaticDeviceExport struct {
	DeviceARN    string `json:"deviceArn"`
	DeviceName   string `json:"deviceName"`
	DeviceType   string `json:"deviceType"`
	ProviderName string `json:"providerName"`
	QubitCount   *int   `json:"qubitCount,omitempty"`
}
