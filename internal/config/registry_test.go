package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !contains(configDir, "dvrip") {
		t.Errorf("GetConfigDir() = %v, should contain 'dvrip'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !contains(configDir, "AppData") && !contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.AutoDiscover != true {
		t.Error("NewRegistry().Preferences.AutoDiscover should be true by default")
	}

	if reg.Preferences.DiscoverTimeout != 10 {
		t.Errorf("NewRegistry().Preferences.DiscoverTimeout = %v, want 10", reg.Preferences.DiscoverTimeout)
	}

	if reg.Preferences.DefaultAuth == nil || reg.Preferences.DefaultAuth.Username != "admin" {
		t.Errorf("NewRegistry().Preferences.DefaultAuth.Username = %+v, want 'admin'", reg.Preferences.DefaultAuth)
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	reg := NewRegistry()

	// First call should create device
	device1 := reg.EnsureDevice("123456")
	if device1 == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	// Second call should return same device
	device2 := reg.EnsureDevice("123456")
	if device1 != device2 {
		t.Error("EnsureDevice() should return same instance for same key")
	}

	// Different key should create new device
	device3 := reg.EnsureDevice("789012")
	if device1 == device3 {
		t.Error("EnsureDevice() should create new instance for different key")
	}
}

func TestRegistryUpdateDeviceLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateDeviceLastSeen("123456", "192.168.1.100", 34567)
	after := time.Now()

	device := reg.GetDevice("123456")
	if device == nil {
		t.Fatal("Device should exist after UpdateDeviceLastSeen()")
	}

	if device.LastHost != "192.168.1.100" {
		t.Errorf("LastHost = %v, want 192.168.1.100", device.LastHost)
	}

	if device.LastPort != 34567 {
		t.Errorf("LastPort = %v, want 34567", device.LastPort)
	}

	if device.LastSeen.Before(before) || device.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", device.LastSeen, before, after)
	}
}

func TestRegistrySetChannelNames(t *testing.T) {
	reg := NewRegistry()

	names := []string{"Front Door", "Driveway", "Backyard", "Garage"}
	reg.SetChannelNames("123456", names)

	device := reg.GetDevice("123456")
	if device == nil {
		t.Fatal("Device should exist after SetChannelNames()")
	}

	if !stringSliceEqual(device.ChannelNames, names) {
		t.Errorf("ChannelNames = %v, want %v", device.ChannelNames, names)
	}
}

func TestRegistrySetDeviceNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetDeviceNickname("123456", "Front Desk NVR")

	device := reg.GetDevice("123456")
	if device == nil {
		t.Fatal("Device should exist after SetDeviceNickname()")
	}

	if device.Nickname != "Front Desk NVR" {
		t.Errorf("Nickname = %v, want 'Front Desk NVR'", device.Nickname)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	// Use a temporary directory for testing
	tmpDir, err := os.MkdirTemp("", "dvrip-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Create and populate registry, then round-trip it through YAML the same
	// way Save()/loadRegistryFromDisk() do.
	reg := NewRegistry()
	reg.SetDeviceNickname("123456", "Test Device")
	reg.SetChannelNames("123456", []string{"Front Door", "Driveway"})
	reg.UpdateDeviceLastSeen("123456", "192.168.1.100", 34567)

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	loadedData, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}

	var loadedReg Registry
	if err := yaml.Unmarshal(loadedData, &loadedReg); err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	device := loadedReg.GetDevice("123456")
	if device == nil {
		t.Fatal("Device should exist in loaded registry")
	}

	if device.Nickname != "Test Device" {
		t.Errorf("Loaded nickname = %v, want 'Test Device'", device.Nickname)
	}

	if !stringSliceEqual(device.ChannelNames, []string{"Front Door", "Driveway"}) {
		t.Errorf("Loaded channel names = %v, want [Front Door Driveway]", device.ChannelNames)
	}

	if device.LastHost != "192.168.1.100" || device.LastPort != 34567 {
		t.Errorf("Loaded last host/port = %v:%v, want 192.168.1.100:34567", device.LastHost, device.LastPort)
	}
}

// Helper functions

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && (s[:len(substr)] == substr || contains(s[1:], substr))))
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureDevice(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureDevice("123456")
	}
}

func BenchmarkSetChannelNames(b *testing.B) {
	reg := NewRegistry()
	names := []string{"Front Door", "Driveway", "Backyard", "Garage"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.SetChannelNames("123456", names)
	}
}
