package category

import (
	"context"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/prefstore"
)

// Auditor sweeps value-store dumps and scores every entry against the
// success-value set. Sources that cannot be read are skipped and logged, so
// a partial audit still reports whatever was available.
type Auditor struct {
	store    *prefstore.Store
	resolver *Resolver
	success  []string
	log      *logger.Logger
}

// NewAuditor builds an auditor over a value store.
func NewAuditor(store *prefstore.Store, successValues []string, log *logger.Logger) *Auditor {
	if log == nil {
		log = logger.Nop()
	}
	if len(successValues) == 0 {
		successValues = config.DefaultSuccessValues
	}
	if store == nil {
		store = prefstore.New(log)
	}
	return &Auditor{
		store:    store,
		resolver: NewResolver(),
		success:  successValues,
		log:      log.WithComponent("audit"),
	}
}

// Run audits the given sources and returns the sorted category aggregates.
// At most prefstore.MaxSources sources are consulted; the rest are ignored
// and logged.
func (a *Auditor) Run(ctx context.Context, sources []config.AuditSource) ([]Aggregate, error) {
	if len(sources) > prefstore.MaxSources {
		a.log.WithFields(map[string]any{
			"configured": len(sources),
			"max":        prefstore.MaxSources,
		}).Warn("too many audit sources, ignoring excess")
		sources = sources[:prefstore.MaxSources]
	}

	var entries []Entry
	for i := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := &sources[i]
		dump, truncated, err := a.store.LoadDump(src.Path)
		if err != nil {
			a.log.WithFields(map[string]any{
				"source": src.Name,
				"path":   src.Path,
				"error":  err,
			}).Warn("skipping unreadable audit source")
			continue
		}
		if truncated {
			a.log.WithFields(map[string]any{
				"source":  src.Name,
				"entries": len(dump),
			}).Warn("audit source truncated")
		}
		for _, kv := range dump {
			entries = append(entries, Entry{
				Ref:    Ref{Key: kv.Key, Source: src},
				Passed: a.isSuccess(kv.Value),
			})
		}
	}

	return Build(a.resolver, entries), nil
}

func (a *Auditor) isSuccess(value string) bool {
	for _, s := range a.success {
		if value == s {
			return true
		}
	}
	return false
}
