package settings

import (
	"strings"

	"github.com/oomph-ac/grip/oerror"
	"github.com/oomph-ac/grip/physics"
)

// RotationTrigger decides when a force pull starts rotating the pulled object towards its target
// orientation.
type RotationTrigger uint8

const (
	// DistanceToHand engages rotation once the object is within RotateTriggerDistance of the anchor.
	DistanceToHand RotationTrigger = iota
	// TimeSinceStart engages rotation once RotateTriggerTime seconds have passed.
	TimeSinceStart
	// PercentTraveled engages rotation once RotateTriggerPercent of the start distance is covered.
	PercentTraveled
)

var rotationTriggerNames = [...]string{
	DistanceToHand:  "distance_to_hand",
	TimeSinceStart:  "time_since_start",
	PercentTraveled: "percent_traveled",
}

func (t RotationTrigger) String() string {
	if int(t) < len(rotationTriggerNames) {
		return rotationTriggerNames[t]
	}
	return "unknown"
}

func (t RotationTrigger) MarshalText() ([]byte, error) {
	if int(t) >= len(rotationTriggerNames) {
		return nil, oerror.New("unknown rotation trigger %d", t)
	}
	return []byte(t.String()), nil
}

func (t *RotationTrigger) UnmarshalText(text []byte) error {
	for i, name := range rotationTriggerNames {
		if strings.EqualFold(string(text), name) {
			*t = RotationTrigger(i)
			return nil
		}
	}
	return oerror.New("unknown rotation trigger %q", text)
}

// RotationStyle decides how fast a pulled object rotates once rotation is engaged.
type RotationStyle uint8

const (
	// RotateOverDistance spreads the rotation over the distance left when rotation engaged.
	RotateOverDistance RotationStyle = iota
	// RotateOverRemaining spreads the remaining rotation over the remaining distance every tick.
	RotateOverRemaining
)

var rotationStyleNames = [...]string{
	RotateOverDistance:  "rotate_over_distance",
	RotateOverRemaining: "rotate_over_remaining",
}

func (s RotationStyle) String() string {
	if int(s) < len(rotationStyleNames) {
		return rotationStyleNames[s]
	}
	return "unknown"
}

func (s RotationStyle) MarshalText() ([]byte, error) {
	if int(s) >= len(rotationStyleNames) {
		return nil, oerror.New("unknown rotation style %d", s)
	}
	return []byte(s.String()), nil
}

func (s *RotationStyle) UnmarshalText(text []byte) error {
	for i, name := range rotationStyleNames {
		if strings.EqualFold(string(text), name) {
			*s = RotationStyle(i)
			return nil
		}
	}
	return oerror.New("unknown rotation style %q", text)
}

// ForcePull configures a force pull run. Runs copy their settings when they start, so changes only
// affect pulls started afterwards.
type ForcePull struct {
	// DistanceThreshold is the distance to the anchor at which the pull succeeds.
	DistanceThreshold float32 `toml:"distance_threshold" yaml:"distance_threshold"`
	// DynamicGrabThreshold replaces DistanceThreshold for targets using a dynamic grab pose.
	DynamicGrabThreshold float32 `toml:"dynamic_grab_threshold" yaml:"dynamic_grab_threshold"`
	// MaxSpeed caps the linear speed of the object while it is pulled.
	MaxSpeed float32 `toml:"max_speed" yaml:"max_speed"`
	// MaxMissSpeed and MaxMissAngularSpeed cap the velocity an object keeps when a pull is aborted.
	MaxMissSpeed        float32 `toml:"max_miss_speed" yaml:"max_miss_speed"`
	MaxMissAngularSpeed float32 `toml:"max_miss_angular_speed" yaml:"max_miss_angular_speed"`

	RotationTrigger       RotationTrigger `toml:"rotation_trigger" yaml:"rotation_trigger"`
	RotateTriggerDistance float32         `toml:"rotate_trigger_distance" yaml:"rotate_trigger_distance"`
	RotateTriggerTime     float32         `toml:"rotate_trigger_time" yaml:"rotate_trigger_time"`
	// RotateTriggerPercent is a percentage in (0, 100].
	RotateTriggerPercent float32       `toml:"rotate_trigger_percent" yaml:"rotate_trigger_percent"`
	RotationStyle        RotationStyle `toml:"rotation_style" yaml:"rotation_style"`

	Drive      physics.Drive `toml:"drive" yaml:"drive"`
	SlerpDrive physics.Drive `toml:"slerp_drive" yaml:"slerp_drive"`
}

// DefaultForcePull ...
func DefaultForcePull() ForcePull {
	return ForcePull{
		DistanceThreshold:     0.1,
		DynamicGrabThreshold:  0.3,
		MaxSpeed:              10,
		MaxMissSpeed:          1,
		MaxMissAngularSpeed:   1,
		RotationTrigger:       PercentTraveled,
		RotateTriggerDistance: 1,
		RotateTriggerTime:     0.25,
		RotateTriggerPercent:  30,
		RotationStyle:         RotateOverDistance,
		Drive:                 physics.Drive{Spring: 150, Damper: 20, MaxForce: 400},
		SlerpDrive:            physics.Drive{Spring: 200, Damper: 25, MaxForce: 800},
	}
}

// Validate ...
func (f ForcePull) Validate() error {
	switch {
	case f.DistanceThreshold < 0 || f.DynamicGrabThreshold < 0:
		return oerror.New("force_pull thresholds cannot be negative")
	case f.MaxSpeed <= 0:
		return oerror.New("force_pull.max_speed must be positive, got %v", f.MaxSpeed)
	case f.MaxMissSpeed < 0 || f.MaxMissAngularSpeed < 0:
		return oerror.New("force_pull miss speeds cannot be negative")
	case f.RotationTrigger > PercentTraveled:
		return oerror.New("force_pull.rotation_trigger %d is unknown", f.RotationTrigger)
	case f.RotationStyle > RotateOverRemaining:
		return oerror.New("force_pull.rotation_style %d is unknown", f.RotationStyle)
	case f.RotateTriggerDistance < 0 || f.RotateTriggerTime < 0:
		return oerror.New("force_pull rotate triggers cannot be negative")
	case f.RotateTriggerPercent <= 0 || f.RotateTriggerPercent > 100:
		return oerror.New("force_pull.rotate_trigger_percent must be within (0, 100], got %v", f.RotateTriggerPercent)
	}
	if !validDrive(f.Drive) {
		return oerror.New("force_pull.drive values cannot be negative")
	}
	if !validDrive(f.SlerpDrive) {
		return oerror.New("force_pull.slerp_drive values cannot be negative")
	}
	return nil
}

func validDrive(d physics.Drive) bool {
	return d.Spring >= 0 && d.Damper >= 0 && d.MaxForce >= 0
}

// OrDefault returns DefaultForcePull if f is left unset, or f otherwise.
func (f ForcePull) OrDefault() ForcePull {
	if f == (ForcePull{}) {
		return DefaultForcePull()
	}
	return f
}
