// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Hsdev is the HarborShield developer workflow tool. It wraps the
// container runtime (compose lifecycle, an exec shell, the app inside
// the dev container), the cargo toolchain (tests, lint gate, release
// builds, SQLx tooling), and registration of the dev container as a
// Zed remote host in ~/.ssh/config. Every child runs in the project
// root regardless of the caller's working directory.
package main
