package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/grip/oerror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings contains every tunable of grip. A zero section is never used directly: DefaultSettings
// fills each section with its defaults and files only override what they specify.
type Settings struct {
	Sim       Sim       `toml:"sim" yaml:"sim"`
	ForcePull ForcePull `toml:"force_pull" yaml:"force_pull"`
	Stabbable Stabbable `toml:"stabbable" yaml:"stabbable"`
	Socket    Socket    `toml:"socket" yaml:"socket"`
}

// Sim configures the simulation loop.
type Sim struct {
	// FixedStep is the duration of a physics tick in seconds.
	FixedStep float32 `toml:"fixed_step" yaml:"fixed_step"`
	// FrameRate is the amount of frames per second the loop runs at.
	FrameRate float32 `toml:"frame_rate" yaml:"frame_rate"`
	// MaxStepsPerFrame caps the physics ticks run in one frame so a long stall cannot spiral.
	MaxStepsPerFrame int `toml:"max_steps_per_frame" yaml:"max_steps_per_frame"`
}

// Stabbable is the settings profile shared by stabbable objects.
type Stabbable struct {
	// RequiredVelocity is the minimum relative speed along the contact normal needed for a stab
	// to start. Zero accepts every contact.
	RequiredVelocity float32 `toml:"required_velocity" yaml:"required_velocity"`
	// FullStabDepth is the penetration depth at which a stab is reported as full. Zero disables
	// automatic full stab detection.
	FullStabDepth float32 `toml:"full_stab_depth" yaml:"full_stab_depth"`
	// AllowMultipleStabbers allows more than one stabber to penetrate at once.
	AllowMultipleStabbers bool `toml:"allow_multiple_stabbers" yaml:"allow_multiple_stabbers"`
}

// Socket holds the defaults of sockets that do not override them.
type Socket struct {
	// HoverScale is the scale a socket's visual is tweened to while a grabbable hovers over it.
	HoverScale float32 `toml:"hover_scale" yaml:"hover_scale"`
	// HoverScaleDuration is how long the hover tween takes, in seconds.
	HoverScaleDuration float32 `toml:"hover_scale_duration" yaml:"hover_scale_duration"`
	// HoverRadius is how close a held grabbable's bounds must come to a socket to hover over it.
	HoverRadius float32 `toml:"hover_radius" yaml:"hover_radius"`
	// ScaleToFit resizes a socketed grabbable so that its bounds fit within FitSize.
	ScaleToFit bool    `toml:"scale_to_fit" yaml:"scale_to_fit"`
	FitSize    float32 `toml:"fit_size" yaml:"fit_size"`
	// CanRemove is false if grabbables cannot be released from the socket once attached.
	CanRemove bool   `toml:"can_remove" yaml:"can_remove"`
	AttachCue string `toml:"attach_cue" yaml:"attach_cue"`
	DetachCue string `toml:"detach_cue" yaml:"detach_cue"`
}

// DefaultSettings returns the default settings for every section.
func DefaultSettings() Settings {
	return Settings{
		Sim:       DefaultSim(),
		ForcePull: DefaultForcePull(),
		Stabbable: DefaultStabbable(),
		Socket:    DefaultSocket(),
	}
}

// DefaultSim ...
func DefaultSim() Sim {
	return Sim{FixedStep: 1.0 / 90.0, FrameRate: 72, MaxStepsPerFrame: 8}
}

// DefaultStabbable ...
func DefaultStabbable() Stabbable {
	return Stabbable{RequiredVelocity: 0.5, FullStabDepth: 0}
}

// DefaultSocket ...
func DefaultSocket() Socket {
	return Socket{
		HoverScale:         1.2,
		HoverScaleDuration: 0.25,
		HoverRadius:        0.1,
		FitSize:            0.2,
		CanRemove:          true,
	}
}

// OrDefault returns the default profile if s is left unset, or s otherwise.
func (s Sim) OrDefault() Sim {
	if s == (Sim{}) {
		return DefaultSim()
	}
	return s
}

// OrDefault ...
func (s Stabbable) OrDefault() Stabbable {
	if s == (Stabbable{}) {
		return DefaultStabbable()
	}
	return s
}

// OrDefault ...
func (s Socket) OrDefault() Socket {
	if s == (Socket{}) {
		return DefaultSocket()
	}
	return s
}

// WithDefaults replaces every section that was left unset with its default profile. Sections that
// were set are kept as they are, even when only partially filled.
func (s Settings) WithDefaults() Settings {
	s.Sim = s.Sim.OrDefault()
	s.ForcePull = s.ForcePull.OrDefault()
	s.Stabbable = s.Stabbable.OrDefault()
	s.Socket = s.Socket.OrDefault()
	return s
}

// Validate returns an error describing the first setting that is out of range.
func (s Settings) Validate() error {
	switch {
	case s.Sim.FixedStep <= 0:
		return oerror.New("sim.fixed_step must be positive, got %v", s.Sim.FixedStep)
	case s.Sim.FrameRate <= 0:
		return oerror.New("sim.frame_rate must be positive, got %v", s.Sim.FrameRate)
	case s.Sim.MaxStepsPerFrame <= 0:
		return oerror.New("sim.max_steps_per_frame must be positive, got %v", s.Sim.MaxStepsPerFrame)
	case s.Stabbable.RequiredVelocity < 0:
		return oerror.New("stabbable.required_velocity cannot be negative")
	case s.Stabbable.FullStabDepth < 0:
		return oerror.New("stabbable.full_stab_depth cannot be negative")
	case s.Socket.HoverScale <= 0:
		return oerror.New("socket.hover_scale must be positive, got %v", s.Socket.HoverScale)
	case s.Socket.HoverScaleDuration < 0:
		return oerror.New("socket.hover_scale_duration cannot be negative")
	case s.Socket.HoverRadius < 0:
		return oerror.New("socket.hover_radius cannot be negative")
	case s.Socket.ScaleToFit && s.Socket.FitSize <= 0:
		return oerror.New("socket.fit_size must be positive when scale_to_fit is set")
	}
	return s.ForcePull.Validate()
}

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}, nil
	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	}
	return codec{}, oerror.New("unsupported settings file extension %q (expected .toml, .yaml or .yml)", filepath.Ext(path))
}

// Marshal encodes the settings in the format matching the extension of path.
func Marshal(path string, s Settings) ([]byte, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := c.marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed encoding settings: %w", err)
	}
	return data, nil
}

// Save writes the settings to path, overwriting any existing file.
func Save(path string, s Settings) error {
	data, err := Marshal(path, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing settings file: %w", err)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will
// return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return oerror.New("settings file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed checking settings file: %w", err)
	}
	return Save(path, DefaultSettings())
}

// Load will load the settings from the file at path on top of the defaults, and return an error if
// the file does not exist, cannot be decoded or holds invalid values.
func Load(path string) (Settings, error) {
	c, err := codecFor(path)
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	s := DefaultSettings()
	if err := c.unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
