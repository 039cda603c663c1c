// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and encoded fixtures for
// tests across the module.
package audiotest
