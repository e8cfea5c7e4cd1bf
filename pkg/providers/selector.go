package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Selector picks the best enabled provider, preferring fine accuracy over
// coarse, and remembers the last selection.
type Selector struct {
	platform Platform
	fine     Profile
	coarse   Profile
	current  string
	hasCurr  bool
	logger   zerolog.Logger
}

// NewSelector creates a selector using FineProfile and CoarseProfile.
func NewSelector(platform Platform, logger zerolog.Logger) *Selector {
	return &Selector{
		platform: platform,
		fine:     FineProfile,
		coarse:   CoarseProfile,
		logger:   logger.With().Str("component", "provider-selector").Logger(),
	}
}

// GetBestProvider queries the fine profile, then the coarse profile, and
// stores the result as the current provider. The previous selection is
// always overwritten, including with "none".
func (s *Selector) GetBestProvider(ctx context.Context) (string, bool, error) {
	name, ok, err := s.platform.BestProvider(ctx, s.fine, true)
	if err != nil {
		s.current, s.hasCurr = "", false
		return "", false, fmt.Errorf("failed to query fine provider: %w", err)
	}
	if !ok {
		name, ok, err = s.platform.BestProvider(ctx, s.coarse, true)
		if err != nil {
			s.current, s.hasCurr = "", false
			return "", false, fmt.Errorf("failed to query coarse provider: %w", err)
		}
	}

	s.current, s.hasCurr = name, ok
	if ok {
		s.logger.Debug().Str("provider", name).Msg("Selected location provider")
	} else {
		s.logger.Warn().Msg("No enabled location provider available")
	}
	return name, ok, nil
}

// IsCurrentProvider reports whether name is the current selection.
func (s *Selector) IsCurrentProvider(name string) bool {
	return s.hasCurr && s.current == name
}

// Current returns the current selection.
func (s *Selector) Current() (string, bool) {
	return s.current, s.hasCurr
}
