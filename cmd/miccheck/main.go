package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/miccheck/miccheck/internal/config"
	"github.com/miccheck/miccheck/internal/device"
	"github.com/miccheck/miccheck/internal/logging"
	"github.com/miccheck/miccheck/internal/stream"
	"github.com/miccheck/miccheck/internal/ui"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
)

var (
	flagDefault      bool
	flagDelay        bool
	flagDelaySeconds int
	flagInput        string
	flagOutput       string
	flagList         bool
	flagLogLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "miccheck",
	Short: "Microphone testing tool",
	Long: `miccheck plays a selected microphone through a selected output device in
near real time, resampling and remapping channels between the two. Use it
to verify a microphone works and how it sounds, or add --delay to hear
yourself with a deliberate echo.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagDefault, "default", "d", false, "use the system default devices without prompting")
	rootCmd.Flags().BoolVar(&flagDelay, "delay", false, "buffer a few seconds of audio to test echo perception")
	rootCmd.Flags().IntVar(&flagDelaySeconds, "delay-seconds", 0, "how much audio the delay mode buffers (default 2)")
	rootCmd.Flags().StringVar(&flagInput, "input", "", "input device name (skips the picker)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "output device name (skips the picker)")
	rootCmd.Flags().BoolVar(&flagList, "list", false, "list available devices and exit")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	log := logging.NewWithLevel(cfg.LogLevel)

	if err := device.Initialize(); err != nil {
		return err
	}
	defer device.Terminate()

	if flagList {
		return printDevices()
	}

	input, err := resolveDevice(cfg.InputDevice, device.Input, "Select input device to test")
	if err != nil {
		return err
	}
	output, err := resolveDevice(cfg.OutputDevice, device.Output, "Select output device to play to")
	if err != nil {
		return err
	}

	inCfg := input.Config()
	outCfg := output.Config()
	fmt.Println(ui.Banner("Input Device", input, inCfg))
	fmt.Println(ui.Banner("Output Device", output, outCfg))

	orch := stream.New(device.PortAudio{}, log)
	session := stream.Session{
		Input:        input,
		Output:       output,
		InputConfig:  inCfg,
		OutputConfig: outCfg,
		Delayed:      flagDelay,
		DelaySeconds: cfg.DelaySeconds,
	}
	if err := orch.Start(session); err != nil {
		return err
	}
	defer orch.Stop()

	stop := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		close(stop)
	}()

	if err := ui.WaitForStop(stop); err != nil {
		return fmt.Errorf("failed to wait for stop signal: %w", err)
	}

	return orch.Stop()
}

// applyFlags merges explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagInput != "" {
		cfg.InputDevice = flagInput
	}
	if flagOutput != "" {
		cfg.OutputDevice = flagOutput
	}
	if cmd.Flags().Changed("delay-seconds") && flagDelaySeconds > 0 {
		cfg.DelaySeconds = flagDelaySeconds
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
}

// resolveDevice picks a device by preferred name, system default, or the
// interactive picker, in that order.
func resolveDevice(preferred string, kind device.Kind, prompt string) (device.Device, error) {
	if preferred != "" {
		return device.Find(preferred, kind)
	}
	if flagDefault {
		if kind == device.Input {
			return device.DefaultInput()
		}
		return device.DefaultOutput()
	}

	var (
		devices []device.Device
		err     error
	)
	if kind == device.Input {
		devices, err = device.Inputs()
	} else {
		devices, err = device.Outputs()
	}
	if err != nil {
		return device.Device{}, err
	}

	d, err := ui.Choose(prompt, devices)
	if errors.Is(err, ui.ErrAborted) {
		return device.Device{}, fmt.Errorf("no device selected")
	}
	return d, err
}

func printDevices() error {
	inputs, err := device.Inputs()
	if err != nil {
		return err
	}
	outputs, err := device.Outputs()
	if err != nil {
		return err
	}

	fmt.Println("Input devices:")
	for _, d := range inputs {
		fmt.Printf("  %s\n", d.Name)
	}
	fmt.Println("Output devices:")
	for _, d := range outputs {
		fmt.Printf("  %s\n", d.Name)
	}
	return nil
}
