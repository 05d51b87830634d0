// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	ch := cfg.Channel

	switch ch.Transport {
	case "tcp", "serial":
	default:
		return fmt.Errorf("config: transport must be tcp or serial, got %q", ch.Transport)
	}

	if ch.Endpoint == "" {
		return fmt.Errorf("config: endpoint required")
	}

	if ch.TimeoutMs <= 0 {
		return fmt.Errorf("config: timeout_ms must be > 0, got %d", ch.TimeoutMs)
	}

	if ch.Transport == "serial" {
		s := ch.Serial

		if s.BaudRate <= 0 {
			return fmt.Errorf("config: baud_rate must be > 0, got %d", s.BaudRate)
		}

		switch s.Parity {
		case "N", "E", "O":
		default:
			return fmt.Errorf("config: parity must be N, E or O, got %q", s.Parity)
		}

		if s.DataBits != 7 && s.DataBits != 8 {
			return fmt.Errorf("config: data_bits must be 7 or 8, got %d", s.DataBits)
		}

		if s.StopBits != 1 && s.StopBits != 2 {
			return fmt.Errorf("config: stop_bits must be 1 or 2, got %d", s.StopBits)
		}
	}

	return nil
}
