// Package discovery provides mDNS-based discovery of DVRIP devices on the
// local network.
//
// Not every DVR/NVR advertises itself over mDNS; this package is a
// convenience layered above internal/session, never a requirement for
// connecting. Devices that don't advertise are reached the same way as
// ever: by dialing a known host and port directly.
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries for the "_dvrip._tcp" service type.
//  2. Listens for service advertisements from responding devices.
//  3. Parses TXT records for serial number and model, when present.
//  4. Returns a list of discovered devices after the timeout period.
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s\n", device.Serial, device.Address())
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface.
//   - Devices must be on the same local network segment.
//   - Firewall must allow mDNS (UDP port 5353).
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
