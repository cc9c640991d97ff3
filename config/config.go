// Package config loads the simulation profile used by the host tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hbridge/core"
)

// Config represents a simulation profile.
type Config struct {
	Inverter InverterConfig `yaml:"inverter"`
	Faults   FaultConfig    `yaml:"faults"`
}

// InverterConfig mirrors the compiled-in firmware constants.
type InverterConfig struct {
	TargetHz        uint32 `yaml:"target_hz"`
	OperatingHz     uint32 `yaml:"operating_hz"`
	TimerDivider    uint32 `yaml:"timer_divider"`
	DeadTimeCycles  uint32 `yaml:"dead_time_cycles"`
	BlinkCycles     uint32 `yaml:"blink_cycles"`
	TransitionPolls uint32 `yaml:"transition_polls"`
}

// FaultConfig selects simulated hardware faults.
type FaultConfig struct {
	InitialPowerState uint8 `yaml:"initial_power_state"` // PCMCTL0.CPM at reset
	StuckBusy         bool  `yaml:"stuck_busy"`
	InvalidTransition bool  `yaml:"invalid_transition"`
	WrongResultState  bool  `yaml:"wrong_result_state"`
}

// Default returns the profile the MSP432 firmware is built with and no
// injected faults.
func Default() *Config {
	p := core.DefaultProfile()
	return &Config{
		Inverter: InverterConfig{
			TargetHz:        p.TargetHz,
			OperatingHz:     p.OperatingHz,
			TimerDivider:    p.TimerDivider,
			DeadTimeCycles:  p.DeadTimeCycles,
			BlinkCycles:     p.BlinkCycles,
			TransitionPolls: p.TransitionPolls,
		},
	}
}

// Load loads a profile from a YAML file. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the profile to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Profile converts the inverter section to a core profile.
func (c *Config) Profile() core.Profile {
	return core.Profile{
		TargetHz:        c.Inverter.TargetHz,
		OperatingHz:     c.Inverter.OperatingHz,
		TimerDivider:    c.Inverter.TimerDivider,
		DeadTimeCycles:  c.Inverter.DeadTimeCycles,
		BlinkCycles:     c.Inverter.BlinkCycles,
		TransitionPolls: c.Inverter.TransitionPolls,
	}
}

// Validate applies the same rules the firmware checks at boot, plus the
// Timer_A divider and range checks, so a bad profile is reported before
// simulating.
func (c *Config) Validate() error {
	p := c.Profile()
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := core.TimerADivider(p.TimerDivider); !ok {
		return fmt.Errorf("timer_divider %d: %w", p.TimerDivider, core.ErrUnsupportedDivider)
	}
	if ticks := core.HalfCycleTicks(p); ticks == 0 || ticks > core.TickLimit {
		return fmt.Errorf("half-cycle period of %d ticks: %w", ticks, core.ErrTickCountOutOfRange)
	}
	return nil
}
