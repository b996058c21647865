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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/quantumdir/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "expired token code",
			err:      &models.ProviderError{StatusCode: 400, Code: "ExpiredTokenException", Message: "token expired"},
			expected: KindAuth,
		},
		{
			name:     "unrecognized client code",
			err:      &models.ProviderError{StatusCode: 403, Code: "UnrecognizedClientException", Message: "bad key"},
			expected: KindAuth,
		},
		{
			name:     "missing token code",
			err:      &models.ProviderError{StatusCode: 401, Code: "MissingAuthenticationTokenException", Message: "no token"},
			expected: KindAuth,
		},
		{
			name:     "invalid signature code",
			err:      &models.ProviderError{StatusCode: 403, Code: "InvalidSignatureException", Message: "bad sig"},
			expected: KindAuth,
		},
		{
			name:     "bare 401 status",
			err:      &models.ProviderError{StatusCode: 401, Message: "unauthorized"},
			expected: KindAuth,
		},
		{
			name:     "access denied code",
			err:      &models.ProviderError{StatusCode: 400, Code: "AccessDeniedException", Message: "denied"},
			expected: KindPermission,
		},
		{
			name:     "bare 403 status",
			err:      &models.ProviderError{StatusCode: 403, Message: "forbidden"},
			expected: KindPermission,
		},
		{
			name:     "resource not found code",
			err:      &models.ProviderError{StatusCode: 400, Code: "ResourceNotFoundException", Message: "gone"},
			expected: KindNotFound,
		},
		{
			name:     "bare 404 status",
			err:      &models.ProviderError{StatusCode: 404, Message: "not found"},
			expected: KindNotFound,
		},
		{
			name:     "validation code",
			err:      &models.ProviderError{StatusCode: 422, Code: "ValidationException", Message: "bad input"},
			expected: KindValidation,
		},
		{
			name:     "bare 400 status",
			err:      &models.ProviderError{StatusCode: 400, Message: "bad request"},
			expected: KindValidation,
		},
		{
			name:     "internal server error",
			err:      &models.ProviderError{StatusCode: 500, Code: "InternalServiceException", Message: "boom"},
			expected: KindServerError,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: KindServerError,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: KindServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.err)
			require.NotNil(t, cls)
			assert.Equal(t, tt.expected, cls.Kind)
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassify_Passthrough(t *testing.T) {
	orig := notFoundErrorf("device not found: %s", "arn:aws:braket:us-east-1::device/qpu/acme/one")

	cls := Classify(fmt.Errorf("resolving: %w", orig))
	assert.Same(t, orig, cls)
}

func TestClassify_WrappedProviderError(t *testing.T) {
	perr := &models.ProviderError{StatusCode: 404, Code: "ResourceNotFoundException", Message: "gone"}
	wrapped := fmt.Errorf("describing device: %w", perr)

	cls := Classify(wrapped)
	require.NotNil(t, cls)
	assert.Equal(t, KindNotFound, cls.Kind)
	assert.Equal(t, "gone", cls.Message)
	assert.ErrorIs(t, cls, perr)
}

func TestClassify_TimeoutMessage(t *testing.T) {
	cls := Classify(fmt.Errorf("listing region us-east-1: %w", context.DeadlineExceeded))
	require.NotNil(t, cls)
	assert.Equal(t, KindServerError, cls.Kind)
	assert.Equal(t, "provider call timed out", cls.Message)
}

func TestError_Format(t *testing.T) {
	err := &Error{Kind: KindValidation, Message: "invalid device ARN format: bogus"}
	assert.Equal(t, "validation: invalid device ARN format: bogus", err.Error())
}
