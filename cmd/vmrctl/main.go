// vmrctl is a command-line control client for the Voicemeeter mixing
// engine: query identity and version, read parameters of either type, dump
// snapshots, and watch the dirty flag from a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/shaban/vmremote"
	"github.com/shaban/vmremote/driver"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: vmrctl <command> [flags]

Commands:
  status            Session and engine status
  version           Engine type and version
  get <param>...    Read parameters (numeric or textual)
  dump              Snapshot parameters as JSON
  watch             Poll the dirty flag and report changes
  run <variant>     Launch the engine (normal|banana|potato|potato64)

The VMREMOTE_DLL environment variable (or a .env file) overrides the
registry lookup of the remote interface library.
`)
}

func main() {
	// A missing .env is fine; it only ever overrides defaults.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "status":
		err = runStatus(os.Args[2:])
	case "version":
		err = runVersion(os.Args[2:])
	case "get":
		err = runGet(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "run":
		err = runLaunch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

// openClient loads the driver, builds a client, and logs in. The returned
// cleanup logs out and releases the library handle.
func openClient() (*vmremote.Client, func(), error) {
	var (
		drv driver.Driver
		err error
	)
	if path := os.Getenv("VMREMOTE_DLL"); path != "" {
		drv, err = driver.OpenPath(path)
	} else {
		drv, err = driver.Open()
	}
	if err != nil {
		return nil, nil, err
	}

	client, err := vmremote.New(vmremote.Config{Driver: drv})
	if err != nil {
		drv.Close()
		return nil, nil, err
	}

	running, err := client.Login()
	if err != nil {
		drv.Close()
		return nil, nil, err
	}
	if !running {
		color.Yellow("channel open, engine not running (vmrctl run <variant> launches it)")
	}

	cleanup := func() {
		client.Logout()
		drv.Close()
	}
	return client, cleanup, nil
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	color.Green("session: %s", client.State())

	mixerType, err := client.MixerType()
	if err != nil {
		return err
	}
	version, err := client.Version()
	if err != nil {
		return err
	}
	dirty, err := client.ParametersDirty()
	if err != nil {
		return err
	}

	fmt.Printf("engine:  %s %s\n", mixerType, version)
	fmt.Printf("dirty:   %t\n", dirty)
	return nil
}

func runVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	mixerType, err := client.MixerType()
	if err != nil {
		return err
	}
	version, err := client.Version()
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", mixerType, version)
	return nil
}

func runGet(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("get: at least one parameter name is required")
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, name := range args {
		value, err := client.Parameter(name)
		if err != nil {
			return err
		}
		if value.IsFloat() {
			fmt.Printf("%s = %s\n", name, value)
		} else {
			fmt.Printf("%s = %q\n", name, value.Text())
		}
	}
	return nil
}

func runLaunch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("run: exactly one variant is required")
	}

	kind, err := parseMixerType(args[0])
	if err != nil {
		return err
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := client.RunEngine(kind); err != nil {
		return err
	}
	color.Green("engine launch requested as %s", kind)
	return nil
}

func parseMixerType(s string) (vmremote.MixerType, error) {
	switch s {
	case "normal":
		return vmremote.MixerNormal, nil
	case "banana":
		return vmremote.MixerBanana, nil
	case "potato":
		return vmremote.MixerPotato, nil
	case "potato64":
		return vmremote.MixerPotato64, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want normal, banana, potato or potato64)", s)
	}
}
