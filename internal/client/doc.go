// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of go-privacy-keeper.
//
// Each invocation runs one command against the server through an
// [adapter.ServerAdapter], logging in first with the configured credentials
// when the command requires authentication. Results are written to the
// configured output as indented JSON, or as raw CSV for the audit export.
package client
