package discovery

import (
	"fmt"
	"net"
	"time"
)

// Device represents a DVR/NVR discovered on the local network via mDNS.
type Device struct {
	// Serial is the device serial number, taken from the TXT record when the
	// device advertises one, otherwise the mDNS instance name.
	Serial string

	// Hostname is the mDNS hostname (e.g., "NVR-A1B2C3.local.").
	Hostname string

	// IP is the IPv4 address (preferred) or IPv6 address of the device.
	IP string

	// Port is the DVRIP TCP port, typically 34567.
	Port int

	// Model contains the device model string, when advertised in the TXT
	// record (key "model").
	Model string

	// Metadata contains the raw mDNS TXT record data, e.g. "model=NVR-8CH",
	// "sn=A1B2C3".
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered.
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("DVRIP device %s (%s) at %s:%d", d.Serial, d.Hostname, d.IP, d.Port)
}

// Address returns the "host:port" string suitable for session.Dial.
func (d *Device) Address() string {
	return net.JoinHostPort(d.IP, fmt.Sprintf("%d", d.Port))
}

// GetMetadata retrieves a TXT record value by key, or an empty string if not
// found.
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
