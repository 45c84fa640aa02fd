package optimize

import "fmt"

// Mode tells whether and how the optimizer runs.
type Mode int

const (
	// ModeEnabledDefault runs the optimizer with the zero Config. It is the
	// zero value, so an unset option means "optimize".
	ModeEnabledDefault Mode = iota
	// ModeDisabled skips optimization entirely.
	ModeDisabled
	// ModeEnabledWith runs the optimizer with an explicit Config.
	ModeEnabledWith
)

func (m Mode) String() string {
	switch m {
	case ModeEnabledDefault:
		return "default"
	case ModeDisabled:
		return "disabled"
	case ModeEnabledWith:
		return "custom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Setting is the resolved form of the "svgo" option: disabled, enabled with
// defaults, or enabled with a configuration.
type Setting struct {
	mode Mode
	cfg  Config
}

// Disabled turns optimization off.
func Disabled() Setting {
	return Setting{mode: ModeDisabled}
}

// EnabledDefault turns optimization on with the default configuration.
func EnabledDefault() Setting {
	return Setting{mode: ModeEnabledDefault}
}

// EnabledWith turns optimization on with cfg.
func EnabledWith(cfg Config) Setting {
	return Setting{mode: ModeEnabledWith, cfg: cfg}
}

// FromBool maps the boolean form of the option.
func FromBool(enabled bool) Setting {
	if enabled {
		return EnabledDefault()
	}
	return Disabled()
}

// Mode returns the setting's mode.
func (s Setting) Mode() Mode { return s.mode }

// Enabled reports whether the optimizer runs.
func (s Setting) Enabled() bool { return s.mode != ModeDisabled }

// Config returns the optimizer configuration; it is the zero Config unless
// the mode is ModeEnabledWith.
func (s Setting) Config() Config {
	if s.mode == ModeEnabledWith {
		return s.cfg
	}
	return Config{}
}

func (s Setting) String() string {
	if s.mode == ModeEnabledWith {
		return fmt.Sprintf("%s(precision=%d, keep_comments=%t)", s.mode, s.cfg.Precision, s.cfg.KeepComments)
	}
	return s.mode.String()
}
