// Package providers chooses which positioning provider a caller should subscribe to.
package providers

import (
	"fmt"
	"strings"
)

// Accuracy is the precision class of a provider. Lower values are finer.
type Accuracy int

const (
	AccuracyFine Accuracy = iota + 1
	AccuracyCoarse
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyFine:
		return "fine"
	case AccuracyCoarse:
		return "coarse"
	default:
		return fmt.Sprintf("accuracy(%d)", int(a))
	}
}

// Power is the power budget class of a provider.
type Power int

const (
	PowerLow Power = iota + 1
	PowerMedium
	PowerHigh
)

func (p Power) String() string {
	switch p {
	case PowerLow:
		return "low"
	case PowerMedium:
		return "medium"
	case PowerHigh:
		return "high"
	default:
		return fmt.Sprintf("power(%d)", int(p))
	}
}

// ParseAccuracy reads "fine" or "coarse".
func ParseAccuracy(s string) (Accuracy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fine":
		return AccuracyFine, nil
	case "coarse":
		return AccuracyCoarse, nil
	}
	return 0, fmt.Errorf("unknown accuracy %q", s)
}

// ParsePower reads "low", "medium" or "high".
func ParsePower(s string) (Power, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PowerLow, nil
	case "medium":
		return PowerMedium, nil
	case "high":
		return PowerHigh, nil
	}
	return 0, fmt.Errorf("unknown power class %q", s)
}

// Profile is the accuracy and power budget a caller asks for.
type Profile struct {
	Accuracy Accuracy
	Power    Power
}

var (
	// FineProfile asks for fine accuracy within a medium power budget.
	FineProfile = Profile{Accuracy: AccuracyFine, Power: PowerMedium}
	// CoarseProfile asks for coarse accuracy within a medium power budget.
	CoarseProfile = Profile{Accuracy: AccuracyCoarse, Power: PowerMedium}
)

// Descriptor describes one provider registered on the platform.
type Descriptor struct {
	Name     string   `json:"name"`
	Accuracy Accuracy `json:"accuracy"`
	Power    Power    `json:"power"`
	Enabled  bool     `json:"enabled"`
}

// Satisfies reports whether d is at least as accurate as p asks for and fits its power budget.
func (d Descriptor) Satisfies(p Profile) bool {
	return d.Accuracy <= p.Accuracy && d.Power <= p.Power
}

func (a Accuracy) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accuracy) UnmarshalText(b []byte) error {
	v, err := ParseAccuracy(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (p Power) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Power) UnmarshalText(b []byte) error {
	v, err := ParsePower(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
