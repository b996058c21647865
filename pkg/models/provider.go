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

package models

import "fmt"

// ProviderDevicePage is one page of a regional device search.
type ProviderDevicePage struct {
	Devices   []ProviderDeviceSummary `json:"devices"`
	NextToken string                  `json:"nextToken,omitempty"`
}

// ProviderDeviceSummary is the raw summary record a regional endpoint
// returns during a search.
type ProviderDeviceSummary struct {
	DeviceARN    string `json:"deviceArn"`
	DeviceName   string `json:"deviceName"`
	DeviceType   string `json:"deviceType"`
	DeviceStatus string `json:"deviceStatus"`
	ProviderName string `json:"providerName"`
}

// ProviderQueueInfo is one queue backlog entry on a device record.
// QueueSize is transported as a string and parsed by the resolver.
type ProviderQueueInfo struct {
	Queue         string `json:"queue"`
	QueueSize     string `json:"queueSize"`
	QueuePriority string `json:"queuePriority,omitempty"`
}

// ProviderDeviceRecord is the raw full record a regional endpoint
// returns for a single device.
type ProviderDeviceRecord struct {
	DeviceARN          string              `json:"deviceArn"`
	DeviceName         string              `json:"deviceName"`
	DeviceType         string              `json:"deviceType"`
	DeviceStatus       string              `json:"deviceStatus"`
	ProviderName       string              `json:"providerName"`
	DeviceQueueInfo    []ProviderQueueInfo `json:"deviceQueueInfo,omitempty"`
	DeviceCapabilities string              `json:"deviceCapabilities,omitempty"`
}

// ProviderError is a failure reported by a regional provider endpoint.
// Code carries the provider's machine-readable error type; StatusCode
// the transport-level status it arrived with.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}
