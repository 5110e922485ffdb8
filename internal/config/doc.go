// Package config provides user configuration management for the dvrip-cli
// command.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for known DVR/NVR devices, including nicknames,
// last-seen addresses, and application preferences. The configuration
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/dvrip/config.yaml or $HOME/.config/dvrip/config.yaml
//   - macOS: $HOME/.config/dvrip/config.yaml
//   - Windows: %LOCALAPPDATA%\dvrip\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores device login passwords. They are
// always prompted from the user when needed.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update device metadata
//	registry.UpdateDeviceLastSeen("front-desk-nvr", "192.168.1.50", 34567)
//	registry.SetDeviceNickname("front-desk-nvr", "Front Desk")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
