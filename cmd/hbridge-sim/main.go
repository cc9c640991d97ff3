package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"hbridge/config"
	"hbridge/core"
	"hbridge/sim"
)

// haltBlinks is how many fault indicator toggles to simulate before giving up
// on a halted board.
const haltBlinks = 10

// maxSeconds bounds --seconds so the cycle count cannot overflow.
const maxSeconds = 3600

var (
	opts = struct {
		config  string
		seconds uint
		trace   bool
		verbose bool
	}{}

	rootCmd = &cobra.Command{
		Use:   "hbridge-sim",
		Short: "Simulate the H-bridge inverter firmware",
		Long:  "Boot the inverter core on a simulated board, run it, and check the switch trace for overlap and dead-time violations.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := checkSeconds(opts.seconds); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			cfg := loadConfig()
			if err := cfg.Validate(); err != nil {
				// Boot the board anyway: the firmware reports the same fault by
				// blinking, which is what the run below shows.
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}

			if opts.verbose || opts.trace {
				core.SetDebugWriter(func(s string) { fmt.Println(s) })
			}

			os.Exit(run(cfg))
		},
	}

	configCmd = &cobra.Command{
		Use:   "write-config",
		Short: "Write the loaded profile back to --config",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			if err := cfg.Save(opts.config); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s\n", opts.config)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "hbridge.yaml", "simulation profile (YAML)")
	rootCmd.Flags().UintVarP(&opts.seconds, "seconds", "s", 1, "simulated run time in seconds")
	rootCmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "dump the timing ring after the run")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print boot messages")
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func checkSeconds(n uint) error {
	if n == 0 || n > maxSeconds {
		return fmt.Errorf("--seconds must be between 1 and %d, got %d", maxSeconds, n)
	}
	return nil
}

func loadConfig() *config.Config {
	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func run(cfg *config.Config) int {
	p := cfg.Profile()
	board := sim.New(p.OperatingHz, sim.Faults{
		InitialPowerState: core.PowerState(cfg.Faults.InitialPowerState),
		StuckBusy:         cfg.Faults.StuckBusy,
		InvalidTransition: cfg.Faults.InvalidTransition,
		WrongResultState:  cfg.Faults.WrongResultState,
	})

	inv := core.New(board.Hardware(), p)
	board.SetInterruptHandler(sim.IRQTA1N, inv.HandleInterrupt)

	fmt.Println("H-bridge inverter simulation")
	fmt.Println("============================")
	fmt.Printf("Target:    %d Hz\n", p.TargetHz)
	fmt.Printf("Clock:     %d Hz, timer /%d\n", p.OperatingHz, p.TimerDivider)
	fmt.Printf("Dead-time: %d cycles (%d ns)\n\n", p.DeadTimeCycles, p.CyclesToNS(p.DeadTimeCycles))

	if err := inv.Start(); err != nil {
		return halt(board, inv, p, err)
	}

	board.AdvanceSeconds(uint64(opts.seconds))

	report := analyze(board.Trace(), p.DeadTimeCycles)
	snap := inv.Switcher().Snapshot()

	fmt.Printf("Clock state:     %s (MCLK %d Hz)\n", inv.ClockState(), board.MCLK())
	fmt.Printf("Timer period:    %d ticks\n", board.TimerPeriod())
	fmt.Printf("Interrupts:      %d\n", snap.HalfCycles)
	fmt.Printf("Output cycles:   %d (%d positive, %d negative half-cycles)\n",
		min(report.positive, report.negative), report.positive, report.negative)
	fmt.Printf("Min dead-time:   %d cycles\n", report.minDeadTime)
	mean, jitter := report.periodStats()
	fmt.Printf("Half-cycle:      %.0f cycles mean, %.1f cycles jitter\n", mean, jitter)
	fmt.Printf("Polarity flips:  %d\n", board.IndicatorToggles())

	if opts.trace {
		core.DumpTimingRing()
	}

	if len(report.violations) > 0 {
		fmt.Println("\nInvariant violations:")
		for _, v := range report.violations {
			fmt.Println("  " + v)
		}
		return 1
	}
	return 0
}

func halt(board *sim.Board, inv *core.Inverter, p core.Profile, cause error) int {
	fmt.Printf("Boot fault: %v\n", cause)
	fmt.Printf("Clock state: %s\n", inv.ClockState())

	blink := inv.BlinkCycles()
	board.RunFor(haltBlinks*uint64(blink), func() { inv.Halt(cause) })
	fmt.Printf("Indicator toggled %d times, every %d us\n",
		board.IndicatorToggles(), p.CyclesToUS(blink))

	if opts.trace {
		core.DumpTimingRing()
	}
	return 2
}

type traceReport struct {
	positive    int
	negative    int
	minDeadTime uint64
	periods     []float64 // cycles between successive energized pairs
	violations  []string
}

// periodStats returns the mean half-cycle period and its standard deviation,
// both in CPU cycles. Fewer than two periods give zero jitter.
func (r traceReport) periodStats() (mean, jitter float64) {
	if len(r.periods) == 0 {
		return 0, 0
	}
	if len(r.periods) == 1 {
		return r.periods[0], 0
	}
	return stat.MeanStdDev(r.periods, nil)
}

// analyze checks the switch trace: every word valid, every pair preceded by
// all-off for at least deadTime cycles, and the pairs alternating.
func analyze(trace []sim.Sample, deadTime uint32) traceReport {
	var r traceReport
	var prev sim.Sample
	var lastPair core.SwitchWord
	var lastOn uint64
	var seenOn bool

	for i, s := range trace {
		if !s.Word.Valid() {
			r.violations = append(r.violations, fmt.Sprintf("cycle %d: invalid word %s", s.Cycle, s.Word))
		}

		if s.Word != core.SwitchesOff {
			switch {
			case i == 0 || prev.Word != core.SwitchesOff:
				r.violations = append(r.violations, fmt.Sprintf("cycle %d: %s without dead-time", s.Cycle, s.Word))
			default:
				gap := s.Cycle - prev.Cycle
				if r.minDeadTime == 0 || gap < r.minDeadTime {
					r.minDeadTime = gap
				}
				if gap < uint64(deadTime) {
					r.violations = append(r.violations, fmt.Sprintf("cycle %d: dead-time %d < %d", s.Cycle, gap, deadTime))
				}
			}
			if s.Word == lastPair {
				r.violations = append(r.violations, fmt.Sprintf("cycle %d: %s repeated", s.Cycle, s.Word))
			}
			lastPair = s.Word

			if seenOn {
				r.periods = append(r.periods, float64(s.Cycle-lastOn))
			}
			lastOn, seenOn = s.Cycle, true

			switch s.Word {
			case core.PositivePair:
				r.positive++
			case core.NegativePair:
				r.negative++
			}
		}
		prev = s
	}
	return r
}
