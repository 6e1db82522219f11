// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHTTPAddress stops startup when the server has nowhere to listen.
var errNoHTTPAddress = errors.New("handler: http address is not configured")
