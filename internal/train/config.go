package train

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/fann/internal/loss"
	"github.com/born-ml/fann/internal/optim"
)

// Algorithm selects the weight update rule.
type Algorithm uint8

// Supported training algorithms.
const (
	// Incremental updates the weights after every example.
	Incremental Algorithm = iota
	// Batch updates the weights once per epoch from the summed slopes.
	Batch
	// RPROP updates once per epoch with per-weight adaptive steps.
	RPROP
	// Quickprop updates once per epoch with a per-weight parabola fit.
	Quickprop
)

// Order selects the order examples are presented in within an epoch.
type Order uint8

// Example orders.
const (
	OrderSequential Order = iota
	OrderShuffled
)

// StopFunc selects the quantity compared against Config.DesiredError.
type StopFunc uint8

// Stop functions.
const (
	// StopMSE stops once the epoch MSE is at or below DesiredError.
	StopMSE StopFunc = iota
	// StopBit stops once the epoch bit-fail count is at or below DesiredError.
	StopBit
)

var (
	algorithmNames = [...]string{Incremental: "incremental", Batch: "batch", RPROP: "rprop", Quickprop: "quickprop"}
	orderNames     = [...]string{OrderSequential: "sequential", OrderShuffled: "shuffled"}
	stopFuncNames  = [...]string{StopMSE: "mse", StopBit: "bit"}
)

func (a Algorithm) String() string { return enumString(algorithmNames[:], uint8(a), "Algorithm") }
func (o Order) String() string     { return enumString(orderNames[:], uint8(o), "Order") }
func (s StopFunc) String() string  { return enumString(stopFuncNames[:], uint8(s), "StopFunc") }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	return enumParse(algorithmNames[:], text, "algorithm", (*uint8)(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	return enumParse(orderNames[:], text, "order", (*uint8)(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StopFunc) UnmarshalText(text []byte) error {
	return enumParse(stopFuncNames[:], text, "stop function", (*uint8)(s))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (s StopFunc) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func enumString(names []string, v uint8, kind string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func enumParse(names []string, text []byte, kind string, dst *uint8) error {
	for i, name := range names {
		if name == string(text) {
			*dst = uint8(i)
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, text)
}

// Config holds the settings of one training run.
//
// Train takes a copy; changing a Config after the call has no effect.
type Config struct {
	Algorithm    Algorithm      `yaml:"algorithm"`      // Update rule (default: RPROP)
	MaxEpochs    int            `yaml:"max_epochs"`     // Epoch budget (default: 1000)
	DesiredError float64        `yaml:"desired_error"`  // Stop threshold (default: 0.001)
	LearningRate float64        `yaml:"learning_rate"`  // Incremental, Batch and Quickprop (default: 0.7)
	Momentum     float64        `yaml:"momentum"`       // Incremental and Batch, range [0, 1) (default: 0)
	Order        Order          `yaml:"order"`          // Example order (default: sequential)
	Seed         uint64         `yaml:"seed"`           // Seed for OrderShuffled
	ErrorFunc    loss.ErrorFunc `yaml:"error_function"` // Error shaping (default: tanh)
	StopFunc     StopFunc       `yaml:"stop_function"`  // Stop quantity (default: mse)
	BitFailLimit float64        `yaml:"bit_fail_limit"` // Bit-fail threshold (default: 0.35)
	Workers      int            `yaml:"workers"`        // Goroutines for epoch-wise algorithms (default: 1)
	ReportEvery  int            `yaml:"report_every"`   // Log every N epochs, 0 logs only the result

	RPROP     optim.RPROPConfig     `yaml:"rprop"`
	Quickprop optim.QuickpropConfig `yaml:"quickprop"`

	// Callback, when set, runs after every epoch. Returning false stops
	// training with StopCallback.
	Callback func(epoch int, mse float64) bool `yaml:"-"`

	// Logger receives progress records. Nil disables logging.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the standard training settings.
func DefaultConfig() Config {
	return Config{
		Algorithm:    RPROP,
		MaxEpochs:    1000,
		DesiredError: 0.001,
		LearningRate: 0.7,
		Order:        OrderSequential,
		ErrorFunc:    loss.ErrorTanh,
		StopFunc:     StopMSE,
		BitFailLimit: loss.DefaultBitFailLimit,
		Workers:      1,
		RPROP:        optim.DefaultRPROPConfig(),
	}
}

// Validate checks the configuration.
//
// Returns an error wrapping ErrInvalidConfig that lists every problem found.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(int(c.Algorithm) < len(algorithmNames), "unknown algorithm %d", uint8(c.Algorithm))
	check(int(c.Order) < len(orderNames), "unknown order %d", uint8(c.Order))
	check(int(c.StopFunc) < len(stopFuncNames), "unknown stop function %d", uint8(c.StopFunc))
	check(c.ErrorFunc.Valid(), "unknown error function %d", uint8(c.ErrorFunc))
	check(c.MaxEpochs > 0, "max_epochs must be positive, got %d", c.MaxEpochs)
	check(c.DesiredError >= 0 && !math.IsInf(c.DesiredError, 0), "desired_error must be finite and >= 0, got %v", c.DesiredError)
	check(c.LearningRate > 0 && !math.IsInf(c.LearningRate, 0), "learning_rate must be positive, got %v", c.LearningRate)
	check(c.Momentum >= 0 && c.Momentum < 1, "momentum must be in [0, 1), got %v", c.Momentum)
	check(c.BitFailLimit > 0, "bit_fail_limit must be positive, got %v", c.BitFailLimit)
	check(c.Workers >= 0, "workers must be >= 0, got %d", c.Workers)
	check(c.ReportEvery >= 0, "report_every must be >= 0, got %d", c.ReportEvery)
	check(c.RPROP.IncreaseFactor >= 0 && c.RPROP.DecreaseFactor >= 0 &&
		c.RPROP.DeltaMin >= 0 && c.RPROP.DeltaMax >= c.RPROP.DeltaMin,
		"invalid rprop settings %+v", c.RPROP)
	check(c.Quickprop.Decay <= 0 && c.Quickprop.Mu >= 0 && c.Quickprop.LR >= 0,
		"invalid quickprop settings %+v", c.Quickprop)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads a YAML training configuration. Fields missing from the
// file keep their DefaultConfig values.
//
// Example file:
//
//	algorithm: incremental
//	max_epochs: 5000
//	desired_error: 0.0001
//	learning_rate: 0.5
//	momentum: 0.9
//	order: shuffled
//	seed: 42
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML training configuration on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
