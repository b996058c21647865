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

	"github.com/carverauto/quantumdir/pkg/models"
)

// ErrorKind is the closed failure taxonomy every directory operation
// reports through.
type ErrorKind string

const (
	// KindValidation is caller-supplied malformed input, detected
	// locally before any provider call.
	KindValidation ErrorKind = "validation"
	// KindAuth is missing or expired credentials. Credentials are
	// shared across regions, so auth failures are global and abort an
	// in-progress multi-region fan-out.
	KindAuth ErrorKind = "auth"
	// KindPermission is access denied by the provider.
	KindPermission ErrorKind = "permission"
	// KindNotFound is a missing resource.
	KindNotFound ErrorKind = "not_found"
	// KindServerError is any other provider-side failure.
	KindServerError ErrorKind = "server_error"
)

// Error is a classified directory failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationErrorf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErrorf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Provider error codes that indicate a credential problem. Credentials
// are shared across every region, so these are never region-scoped.
var authErrorCodes = map[string]struct{}{
	"UnrecognizedClientException":         {},
	"ExpiredTokenException":               {},
	"InvalidSignatureException":           {},
	"MissingAuthenticationTokenException": {},
}

// Classify maps any error a provider call can surface into the closed
// taxonomy. Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var derr *Error
	if errors.As(err, &derr) {
		return derr
	}

	var perr *models.ProviderError
	if errors.As(err, &perr) {
		return classifyProviderError(perr, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindServerError, Message: "provider call timed out", Err: err}
	}

	return &Error{Kind: KindServerError, Message: err.Error(), Err: err}
}

func classifyProviderError(perr *models.ProviderError, cause error) *Error {
	if _, ok := authErrorCodes[perr.Code]; ok || perr.StatusCode == 401 {
		return &Error{Kind: KindAuth, Message: perr.Message, Err: cause}
	}

	switch {
	case perr.Code == "AccessDeniedException" || perr.StatusCode == 403:
		return &Error{Kind: KindPermission, Message: perr.Message, Err: cause}
	case perr.Code == "ResourceNotFoundException" || perr.StatusCode == 404:
		return &Error{Kind: KindNotFound, Message: perr.Message, Err: cause}
	case perr.Code == "ValidationException" || perr.StatusCode == 400:
		return &Error{Kind: KindValidation, Message: perr.Message, Err: cause}
	default:
		return &Error{Kind: KindServerError, Message: perr.Message, Err: cause}
	}
}

// KindOf returns the taxonomy kind of an error after classification.
func KindOf(err error) ErrorKind {
	return Classify(err).Kind
}
