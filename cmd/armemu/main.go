// Command armemu runs the ARMv4 handheld core over a BIOS and cartridge
// flash image, either headless or under the termui register/memory
// debugger.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	arm "github.com/user-none/go-chip-arm"
	"github.com/user-none/go-chip-arm/bus"
	"github.com/user-none/go-chip-arm/internal/config"
	"github.com/user-none/go-chip-arm/internal/debugview"
)

func main() {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "armemu",
		Short: "ARMv4 handheld core runner",
	}

	var biosPath, flashPath string
	var maxSteps int
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the BIOS/flash image headlessly until it faults or max-steps is reached",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BIOSPath, cfg.FlashPath = biosPath, flashPath
			cfg.MaxSteps, cfg.Verbose = maxSteps, verbose
			cfg.ApplyEnv()
			return runHeadless(cfg)
		},
	}
	runCmd.Flags().StringVar(&biosPath, "bios", "", "Path to the 16KiB BIOS image (required)")
	runCmd.Flags().StringVar(&flashPath, "flash", "", "Path to the cartridge flash image")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Stop after this many instructions (0 = unbounded)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the PC before every step")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run under the interactive register/memory debugger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BIOSPath, cfg.FlashPath = biosPath, flashPath
			cfg.Debug = true
			cfg.ApplyEnv()
			return runInteractive(cfg)
		},
	}
	inspectCmd.Flags().StringVar(&biosPath, "bios", "", "Path to the 16KiB BIOS image (required)")
	inspectCmd.Flags().StringVar(&flashPath, "flash", "", "Path to the cartridge flash image")

	rootCmd.AddCommand(runCmd, inspectCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMachine(cfg config.Config) (*arm.CPU, *bus.Interconnect, error) {
	if cfg.BIOSPath == "" {
		return nil, nil, fmt.Errorf("--bios is required")
	}
	biosImage, err := os.ReadFile(cfg.BIOSPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading bios: %w", err)
	}

	var flashImage []byte
	if cfg.FlashPath != "" {
		flashImage, err = os.ReadFile(cfg.FlashPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading flash: %w", err)
		}
	}

	ic := bus.NewInterconnect(biosImage, flashImage)
	cpu := arm.New(ic, cfg.ResetPC)
	return cpu, ic, nil
}

func runHeadless(cfg config.Config) error {
	cpu, ic, err := newMachine(cfg)
	if err != nil {
		return err
	}

	steps := 0
	for cfg.MaxSteps == 0 || steps < cfg.MaxSteps {
		if cfg.Verbose {
			fmt.Printf("pc=%08x\n", cpu.Registers().PC)
		}
		if stepErr := cpu.Step(); stepErr != nil {
			return stepErr
		}
		ic.Tick(1)
		cpu.RequestIRQ(ic.IRQPending())
		steps++
	}
	fmt.Printf("ran %d steps, pc=%08x\n", steps, cpu.Registers().PC)
	return nil
}

func runInteractive(cfg config.Config) error {
	cpu, ic, err := newMachine(cfg)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("inspect requires an interactive terminal")
	}

	view := debugview.New(cpu)
	cpu.SetDebugger(view)

	if err := debugview.Init(); err != nil {
		return fmt.Errorf("termui init: %w", err)
	}
	defer debugview.Close()

	view.Draw()
	for e := range debugview.PollEvents() {
		switch e.ID {
		case "q", "Q", "<C-c>":
			return nil
		case "<Space>":
			if !cpu.Halted() {
				_ = cpu.Step()
				ic.Tick(1)
				cpu.RequestIRQ(ic.IRQPending())
			}
		}
		view.Draw()
	}
	return nil
}
