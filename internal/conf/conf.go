package conf

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
)

var (
	Path string       // Config path
	mu   sync.RWMutex // Protects access to Conf
	Conf = Default()
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		IntervalIndex: 1,
		CPUWindow:     "0s",
		Scheduler: Scheduler{
			Command: "systemctl",
			Args:    []string{"status", "--no-pager"},
			Skip:    7,
			Take:    10,
		},
		Display: Display{
			Terminal:    true,
			ClearScreen: true,
		},
		Web: Web{
			Enabled:  false,
			Addr:     ":8080",
			RootPath: "web",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig Set Path and load config into memory
// Run this at start. A missing file leaves the defaults in memory; nothing is written.
func LoadConfig(path string) error {
	Path = path
	err := Update()
	if err != nil {
		if os.IsNotExist(err) {
			mu.Lock()
			Conf = Default()
			mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// Update reads the config file and loads it into the global Conf variable
func Update() (err error) {
	mu.Lock()
	defer mu.Unlock()

	if _, err = os.Stat(Path); err != nil {
		return err
	}
	next := Default()
	_, err = toml.DecodeFile(Path, &next)
	if err != nil {
		return fmt.Errorf("failed to update global config %w", err)
	}
	Conf = next
	return nil
}

// Write saves the provided config to the TOML file at the global Path
func Write(conf Config) (err error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(Path)
	if err != nil {
		return fmt.Errorf("failed to create config file %w", err)
	}
	defer f.Close()
	err = toml.NewEncoder(f).Encode(conf)
	if err != nil {
		return fmt.Errorf("failed to write config file %w", err)
	}

	// Update global config after successful write
	Conf = conf
	return nil
}

// Read returns a copy of the current configuration
func Read() Config {
	mu.RLock()
	defer mu.RUnlock()

	conf := Conf
	conf.Scheduler.Args = append([]string(nil), Conf.Scheduler.Args...)
	return conf
}

// GetIntervalIndex returns the initial refresh interval index
func GetIntervalIndex() int {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.IntervalIndex
}

// GetCPUWindow returns the CPU load sampling window
func GetCPUWindow() (time.Duration, error) {
	mu.RLock()
	defer mu.RUnlock()

	if Conf.CPUWindow == "" {
		return 0, nil
	}
	window, err := cast.ToDurationE(Conf.CPUWindow)
	if err != nil {
		return 0, fmt.Errorf("invalid CPUWindow %q: %w", Conf.CPUWindow, err)
	}
	return window, nil
}

// GetScheduler returns the Scheduler config in a thread-safe manner
func GetScheduler() Scheduler {
	mu.RLock()
	defer mu.RUnlock()

	s := Conf.Scheduler
	s.Args = append([]string(nil), Conf.Scheduler.Args...)
	return s
}

// GetDisplay returns the Display config in a thread-safe manner
func GetDisplay() Display {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Display
}

// GetWeb returns the Web config in a thread-safe manner
func GetWeb() Web {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Web
}

// GetLog returns the Log config in a thread-safe manner
func GetLog() Log {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Log
}
