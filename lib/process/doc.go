// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the hsdev entrypoint's error-to-exit-code
// mapping. It is the only place outside the CLI printer that writes raw
// text to stderr.
package process
