package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvrip-go/dvrip"
	"github.com/dvrip-go/dvrip/internal/config"
	"github.com/dvrip-go/dvrip/internal/discovery"
)

// Common connection flags, persistent on root so every device command
// shares them.
var (
	deviceHost  string
	devicePort  int
	username    string
	scanTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceHost, "host", "", "Device host or IP address")
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", discovery.DefaultPort, "Device DVRIP port")
	rootCmd.PersistentFlags().StringVar(&username, "user", "admin", "Login username")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(sysinfoCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(watchCmd)
}

// scanCmd discovers devices on the network via mDNS.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for DVRIP devices on the network",
	Long: `Scan for DVRIP devices using mDNS/DNS-SD discovery.

Not every device advertises itself over mDNS; devices that don't respond
can still be reached directly with --host.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for DVRIP devices (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the device is powered on and reachable")
		fmt.Println("  - Verify your computer is on the same network segment")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --host to specify an address manually if discovery fails")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))
	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Serial)
		fmt.Printf("   Address: %s\n", device.Address())
		if device.Model != "" {
			fmt.Printf("   Model:   %s\n", device.Model)
		}
		fmt.Println()
	}

	reg, err := config.LoadRegistry()
	if err == nil {
		for _, device := range devices {
			reg.UpdateDeviceLastSeen(device.Serial, device.IP, device.Port)
		}
		_ = reg.Save()
	}

	return nil
}

// loginCmd verifies a login against a device and remembers it in the
// registry.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a device and remember it",
	Long:  `Connect to a device, verify the supplied credentials, and cache its address and username in the local config registry.`,
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	addr, err := resolveAddress()
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	client, err := dvrip.Dial(addr, dvrip.Options{})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in to %s (session 0x%08x)\n", addr, client.SessionID())

	reg, err := config.LoadRegistry()
	if err == nil {
		reg.UpdateDeviceLastSeen(addr, deviceHost, devicePort)
		reg.SetDeviceNickname(addr, addr)
		reg.EnsureDevice(addr).Username = username
		if names, err := client.ChannelNames(); err == nil {
			reg.SetChannelNames(addr, names)
		}
		_ = reg.Save()
	}

	return nil
}

// channelsCmd lists the device's channel titles.
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channel display titles",
	RunE:  withLoggedInClient(runChannels),
}

func runChannels(client *dvrip.Client) error {
	names, err := client.ChannelNames()
	if err != nil {
		return fmt.Errorf("failed to get channel names: %w", err)
	}
	for i, name := range names {
		fmt.Printf("%d. %s\n", i, name)
	}
	return nil
}

// sysinfoCmd retrieves a named system-information document.
var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo <name>",
	Short: "Retrieve a system-information document (e.g. SystemInfo)",
	Args:  cobra.ExactArgs(1),
}

func init() {
	// sysinfo and config both take a positional document name, so their
	// RunE is assigned here rather than inline in the var block.
	sysinfoCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runNamedDocument(args[0], func(client *dvrip.Client, name string) (map[string]interface{}, error) {
			return client.SysInfo(name)
		})
	}
	configCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runNamedDocument(args[0], func(client *dvrip.Client, name string) (map[string]interface{}, error) {
			return client.Config(name)
		})
	}
}

// configCmd retrieves a named configuration section.
var configCmd = &cobra.Command{
	Use:   "config <name>",
	Short: "Retrieve a configuration section (e.g. NetWork.NetCommon)",
	Args:  cobra.ExactArgs(1),
}

func runNamedDocument(name string, fetch func(*dvrip.Client, string) (map[string]interface{}, error)) error {
	addr, password, err := credentialsForLogin()
	if err != nil {
		return err
	}

	client, err := dvrip.Dial(addr, dvrip.Options{})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	doc, err := fetch(client, name)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s: %w", name, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// snapshotCmd captures a still picture from a channel.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <channel> <output.jpg>",
	Short: "Capture a still picture from a channel",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	var channel int
	if _, err := fmt.Sscanf(args[0], "%d", &channel); err != nil {
		return fmt.Errorf("invalid channel: %w", err)
	}
	outputPath := args[1]

	addr, password, err := credentialsForLogin()
	if err != nil {
		return err
	}

	client, err := dvrip.Dial(addr, dvrip.Options{})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	data, err := client.CapturePicture(channel)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(data), outputPath)
	return nil
}

// watchCmd subscribes to alarm pushes and prints them as they arrive.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for alarm events until interrupted",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	addr, password, err := credentialsForLogin()
	if err != nil {
		return err
	}

	client, err := dvrip.Dial(addr, dvrip.Options{})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("Watching for alarms (Ctrl-C to stop)...")

	done := make(chan struct{})
	err = client.MonitorAlarms(func(ev dvrip.AlarmEvent) {
		if ev.Err != nil {
			fmt.Printf("malformed alarm push: %v\n", ev.Err)
			return
		}
		state := "Stop"
		if ev.IsStart {
			state = "Start"
		}
		fmt.Printf("channel %d: %s (%s)\n", ev.Channel, ev.EventName, state)
	})
	if err != nil {
		return fmt.Errorf("failed to arm alarm monitoring: %w", err)
	}

	<-done
	return nil
}

// withLoggedInClient wraps a RunE body that needs no positional args with
// connect-and-login boilerplate.
func withLoggedInClient(fn func(*dvrip.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		addr, password, err := credentialsForLogin()
		if err != nil {
			return err
		}

		client, err := dvrip.Dial(addr, dvrip.Options{})
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		defer client.Close()

		if err := client.Login(username, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		return fn(client)
	}
}

// resolveAddress returns the "host:port" to dial, from --host/--port.
func resolveAddress() (string, error) {
	if deviceHost == "" {
		return "", fmt.Errorf("no device specified, use --host")
	}
	return fmt.Sprintf("%s:%d", deviceHost, devicePort), nil
}

// credentialsForLogin resolves the address to dial and prompts for a
// password. The library itself never stores or reads passwords from disk.
func credentialsForLogin() (addr, password string, err error) {
	addr, err = resolveAddress()
	if err != nil {
		return "", "", err
	}
	password, err = promptPassword()
	return addr, password, err
}

// promptPassword reads a password from stdin. Output is not suppressed:
// the library's Non-goals explicitly drop interactive terminal handling
// (no golang.org/x/term dependency), leaving that to callers that need it.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
