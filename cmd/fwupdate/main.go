// cmd/fwupdate/main.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tamzrod/fwupdate/internal/action"
	"github.com/tamzrod/fwupdate/internal/channel"
	chmodbus "github.com/tamzrod/fwupdate/internal/channel/modbus"
	"github.com/tamzrod/fwupdate/internal/config"
	"github.com/tamzrod/fwupdate/internal/update"
)

func main() {
	set, err := action.Parse(os.Args[1:])
	if err != nil {
		fmt.Print(action.Usage(os.Args[0]))
		os.Exit(1)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Getenv("FWUPDATE_CONFIG"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	ch, err := chmodbus.New(channelConfig(cfg))
	if err != nil {
		log.Fatalf("channel setup failed: %v", err)
	}

	// Historical behavior, kept on purpose: a run that reaches the device
	// exits 0 even when a stage fails; the failure is only printed.
	if err := run(os.Stdout, ch, set); err != nil {
		fmt.Printf("%v\n", err)
	}
}

func run(out io.Writer, ch channel.Channel, set action.Set) error {
	if err := ch.Connect(); err != nil {
		return fmt.Errorf("failed to connect to device stack: %w", err)
	}
	defer ch.Close()

	fmt.Fprintln(out, "----------------------------------------------------")
	fmt.Fprintln(out, "Firmware update tool for IF card service processor")
	fmt.Fprintln(out, "----------------------------------------------------")

	info, err := ch.Info()
	if err != nil {
		return &update.StageError{Stage: update.StageInfo, Err: err}
	}

	fmt.Fprintf(out, "User stack version:     0x%08X\n", info.UserVersion)
	fmt.Fprintf(out, "User stack feature:     0x%08X\n", info.UserFeature)
	fmt.Fprintf(out, "Kernel stack version:   0x%08X\n", info.KernelVersion)
	fmt.Fprintf(out, "Kernel stack feature:   0x%08X\n", info.KernelFeature)

	return update.New(ch).Run(set)
}

func channelConfig(cfg *config.Config) chmodbus.Config {
	ch := cfg.Channel
	return chmodbus.Config{
		Transport:      ch.Transport,
		Endpoint:       ch.Endpoint,
		UnitID:         ch.UnitID,
		Timeout:        ch.Timeout(),
		BaudRate:       ch.Serial.BaudRate,
		DataBits:       ch.Serial.DataBits,
		Parity:         ch.Serial.Parity,
		StopBits:       ch.Serial.StopBits,
		DataWindowRegs: ch.DataWindowRegs,
	}
}
