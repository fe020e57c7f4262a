// Package config defines the format-agnostic model of a scan session.
//
// A session describes everything a run needs: how to reach the
// instrument, which channels to scan with which measurement function,
// the scan cadence, and where the readings go. The Loader interface
// decouples this model from any particular file format; internal/hclcfg
// provides the HCL implementation.
package config
