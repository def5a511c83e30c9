// Package resolver resolves job info for publishes against the current settings.
//
// Settings are held as an immutable Snapshot. A resolution loads the current snapshot once and
// uses it throughout, so a concurrent reload never mixes two settings generations in one result.
package resolver

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/common/logging"
	"github.com/renderfarm/jobinfo/internal/jobinfo/assembler"
	"github.com/renderfarm/jobinfo/internal/jobinfo/configuration"
	"github.com/renderfarm/jobinfo/internal/jobinfo/matching"
	"github.com/renderfarm/jobinfo/internal/jobinfo/metrics"
	"github.com/renderfarm/jobinfo/internal/jobinfo/overrides"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Snapshot is one generation of settings.
type Snapshot struct {
	Generation uint64
	Config     *configuration.Config
	assembler  *assembler.Assembler
}

// Request is a single publish to resolve.
type Request struct {
	Context   profile.JobContext
	Overrides overrides.Values
	// Environment of the submitting process.
	BaseEnv map[string]string
}

// Match is the outcome of profile selection for a publish.
type Match struct {
	Snapshot *Snapshot
	// Index of the selected profile, or matching.NoMatch.
	Index   int
	Profile *profile.Profile
}

type Service struct {
	snapshot   atomic.Pointer[Snapshot]
	// Guards generation and orders snapshot stores with their settings metrics.
	swapMu     sync.Mutex
	generation uint64
	cache      *matchCache
	metrics    *metrics.Metrics
}

// NewService returns a Service resolving against cfg. cacheSize bounds the profile match cache.
func NewService(cfg *configuration.Config, m *metrics.Metrics, cacheSize int) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("[resolver.NewService] settings must not be nil")
	}
	cache, err := newMatchCache(cacheSize)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Service{cache: cache, metrics: m}
	s.Swap(cfg)
	return s, nil
}

// Snapshot returns the settings currently used for resolution.
func (s *Service) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Swap makes cfg the settings used by subsequent resolutions.
// Concurrent swaps are serialized, so the stored snapshot always carries the latest generation.
func (s *Service) Swap(cfg *configuration.Config) *Snapshot {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()
	s.generation++
	snapshot := &Snapshot{
		Generation: s.generation,
		Config:     cfg,
		assembler:  assembler.NewAssembler(cfg.Defaults),
	}
	s.snapshot.Store(snapshot)
	s.metrics.RecordSettings(snapshot.Generation, len(cfg.Profiles))
	return snapshot
}

// Reload swaps in cfg unless loading it failed, in which case the current settings are kept.
// Its signature matches the callback of configuration.Watch.
func (s *Service) Reload(cfg *configuration.Config, err error) {
	if err != nil {
		s.metrics.RecordReload(metrics.ReloadRejected)
		logging.WithStacktrace(log.WithField("generation", s.Snapshot().Generation), err).
			Error("Rejected settings reload, keeping current settings")
		return
	}
	snapshot := s.Swap(cfg)
	s.metrics.RecordReload(metrics.ReloadAccepted)
	log.WithFields(log.Fields{
		"generation": snapshot.Generation,
		"version":    cfg.Version.String(),
		"profiles":   len(cfg.Profiles),
	}).Info("Settings reloaded")
}

// Match selects the profile for ctx. No profile is selected when profiles are disabled.
func (s *Service) Match(ctx profile.JobContext) Match {
	return s.match(s.Snapshot(), ctx)
}

func (s *Service) match(snapshot *Snapshot, ctx profile.JobContext) Match {
	cfg := snapshot.Config
	if !cfg.Enabled || len(cfg.Profiles) == 0 {
		return Match{Snapshot: snapshot, Index: matching.NoMatch}
	}
	index, ok := s.cache.get(snapshot.Generation, ctx)
	s.metrics.RecordMatchCacheLookup(ok)
	if !ok {
		index = matching.SelectIndex(cfg.Profiles, ctx)
		s.cache.add(snapshot.Generation, ctx, index)
	}
	if index == matching.NoMatch {
		return Match{Snapshot: snapshot, Index: index}
	}
	return Match{Snapshot: snapshot, Index: index, Profile: cfg.Profiles[index]}
}

// AttributeDefinitions describes the overrides the artist may edit for ctx.
func (s *Service) AttributeDefinitions(ctx profile.JobContext) []overrides.AttributeDefinition {
	m := s.Match(ctx)
	return overrides.AttributeDefinitions(m.Profile, ctx.Exposed())
}

// Resolve assembles the job info for req. Errors concern this publish only.
func (s *Service) Resolve(req Request) (*assembler.ResolvedJobInfo, error) {
	ctx := req.Context
	logger := log.WithFields(log.Fields{
		"host":     ctx.HostName,
		"taskType": ctx.TaskType,
		"task":     ctx.TaskName,
	})

	if ctx.ProductType != "" && !profile.IsFarmProductType(ctx.ProductType) {
		s.metrics.RecordResolution(ctx.HostName, metrics.ResultFailed)
		return nil, errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "product_type",
			Value:   ctx.ProductType,
			Message: "not rendered on the farm",
		})
	}

	snapshot := s.Snapshot()
	m := s.match(snapshot, ctx)
	info, err := snapshot.assembler.Assemble(m.Profile, ctx, req.Overrides, req.BaseEnv)
	if err != nil {
		s.metrics.RecordResolution(ctx.HostName, metrics.ResultFailed)
		var expansionErr *farmerrors.ErrRuleExpansion
		if errors.As(err, &expansionErr) {
			s.metrics.RecordRuleExpansionFailure(expansionErr.RuleName)
		}
		logging.WithStacktrace(logger, err).Warn("Failed to resolve job info")
		return nil, err
	}
	info.Generation = snapshot.Generation

	result := metrics.ResultMatched
	switch {
	case !snapshot.Config.Enabled:
		result = metrics.ResultDisabled
	case m.Profile == nil:
		result = metrics.ResultDefaulted
	}
	s.metrics.RecordResolution(ctx.HostName, result)
	logger.WithFields(log.Fields{
		"generation": snapshot.Generation,
		"profile":    m.Index,
		"result":     result,
	}).Debug("Resolved job info")
	return info, nil
}
