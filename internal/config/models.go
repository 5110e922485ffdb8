package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for known DVR/NVR devices and
// application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by serial number, or host:port when no serial is known
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single DVR/NVR device.
// This is keyed by the device's serial number (when discovered via mDNS) or
// its host:port in the Registry.
type Device struct {
	Nickname     string    `yaml:"nickname,omitempty"`      // User-friendly name
	LastHost     string    `yaml:"last_host,omitempty"`     // Last known host or IP address
	LastPort     int       `yaml:"last_port,omitempty"`     // Last known DVRIP port
	LastSeen     time.Time `yaml:"last_seen,omitempty"`     // Last discovery/connection time
	Username     string    `yaml:"username,omitempty"`      // Default login username for this device
	ChannelNames []string  `yaml:"channel_names,omitempty"` // Cached channel titles, for display without reconnecting
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool       `yaml:"auto_discover"`          // Enable automatic mDNS discovery on startup
	DiscoverTimeout int        `yaml:"discover_timeout"`       // mDNS discovery timeout in seconds
	DefaultAuth     *AuthPrefs `yaml:"default_auth,omitempty"` // Default authentication preferences
}

// AuthPrefs represents default authentication preferences.
// Note: passwords are NEVER stored - they are always prompted from the user.
type AuthPrefs struct {
	Username string `yaml:"username"` // Default username (e.g., "admin")
	// Password is NEVER stored in config file for security reasons
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			DefaultAuth: &AuthPrefs{
				Username: "admin",
			},
		},
	}
}

// GetDevice retrieves device metadata by key. Returns nil if the device
// doesn't exist in the registry.
func (r *Registry) GetDevice(key string) *Device {
	return r.Devices[key]
}

// EnsureDevice ensures a device entry exists in the registry. If the device
// doesn't exist, creates a new entry with default values. Returns the
// device entry (existing or newly created).
func (r *Registry) EnsureDevice(key string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	if device, exists := r.Devices[key]; exists {
		return device
	}
	device := &Device{}
	r.Devices[key] = device
	return device
}

// UpdateDeviceLastSeen updates the last seen timestamp and address for a
// device.
func (r *Registry) UpdateDeviceLastSeen(key, host string, port int) {
	device := r.EnsureDevice(key)
	device.LastSeen = time.Now()
	device.LastHost = host
	device.LastPort = port
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(key, nickname string) {
	device := r.EnsureDevice(key)
	device.Nickname = nickname
}

// SetChannelNames caches the channel titles last retrieved from a device, so
// they can be displayed without reconnecting.
func (r *Registry) SetChannelNames(key string, names []string) {
	device := r.EnsureDevice(key)
	device.ChannelNames = names
}
