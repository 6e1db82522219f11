// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks caller-supplied governance inputs before any
// storage or audit work happens.
//
// A rejection here surfaces as an invalid-argument error and leaves no
// trace in the audit log. Field names such as [FieldName] or
// [FieldRetentionDays] restrict a call to part of a value, for example when
// only the retention days of a request need checking.
package validators

import "context"

// Validator checks obj, optionally only the named fields of it.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
