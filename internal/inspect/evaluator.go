package inspect

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/prefstore"
	shiperrors "github.com/alexisbeaulieu97/shipshape/pkg/errors"
)

// DefaultCacheTTL is how long a result is reused before the item is probed
// again. Rapid page flips in the wizard land on the cache instead of hitting
// the filesystem.
const DefaultCacheTTL = 2 * time.Second

// EvaluatorOptions configures an Evaluator. Zero values fall back to
// sensible defaults.
type EvaluatorOptions struct {
	Store         *prefstore.Store
	DefaultStore  string
	SuccessValues []string
	CacheTTL      time.Duration
	Logger        *logger.Logger
	Now           func() time.Time
}

// Evaluator runs item checks and caches their results.
type Evaluator struct {
	store         *prefstore.Store
	defaultStore  string
	successValues []string
	cacheTTL      time.Duration
	log           *logger.Logger
	now           func() time.Time

	mu    sync.Mutex
	cache map[string]cachedResult
}

type cachedResult struct {
	result Result
	at     time.Time
}

// NewEvaluator builds an Evaluator from options.
func NewEvaluator(opts EvaluatorOptions) *Evaluator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("inspect")
	store := opts.Store
	if store == nil {
		store = prefstore.New(log)
	}
	success := opts.SuccessValues
	if len(success) == 0 {
		success = config.DefaultSuccessValues
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		store:         store,
		defaultStore:  opts.DefaultStore,
		successValues: success,
		cacheTTL:      ttl,
		log:           log,
		now:           now,
		cache:         make(map[string]cachedResult),
	}
}

// FromConfig builds an Evaluator wired to a config's settings.
func FromConfig(cfg *config.Config, log *logger.Logger) *Evaluator {
	return NewEvaluator(EvaluatorOptions{
		DefaultStore:  cfg.Settings.Store,
		SuccessValues: cfg.Settings.ResolvedSuccessValues(),
		Logger:        log,
	})
}

// Evaluate runs the item's check, honouring the result cache. The check
// cascade is: repo, command, trivial (no paths), path existence, key lookup,
// and finally a filesystem negative when declared paths are all absent and no
// key is configured.
func (e *Evaluator) Evaluate(ctx context.Context, item config.Item) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := e.now()
	e.mu.Lock()
	if entry, ok := e.cache[item.ID]; ok && now.Sub(entry.at) < e.cacheTTL {
		e.mu.Unlock()
		e.log.WithFields(map[string]any{"item": item.ID}).Debug("evaluation cache hit")
		return entry.result, nil
	}
	e.mu.Unlock()

	result, err := e.evaluate(ctx, item, now)
	if err != nil {
		return Result{}, shiperrors.NewEvalError(item.ID, err)
	}

	e.mu.Lock()
	e.cache[item.ID] = cachedResult{result: result, at: now}
	e.mu.Unlock()

	e.log.WithFields(map[string]any{
		"item":      item.ID,
		"valid":     result.Valid,
		"installed": result.Installed,
		"source":    string(result.Source),
	}).Debug("evaluated item")
	return result, nil
}

// Flush drops every cached result so the next evaluation probes fresh.
func (e *Evaluator) Flush() {
	e.mu.Lock()
	e.cache = make(map[string]cachedResult)
	e.mu.Unlock()
}

// Invalidate drops the cached result for one item.
func (e *Evaluator) Invalidate(itemID string) {
	e.mu.Lock()
	delete(e.cache, itemID)
	e.mu.Unlock()
}

func (e *Evaluator) evaluate(ctx context.Context, item config.Item, now time.Time) (Result, error) {
	switch {
	case item.Repo != nil:
		return e.evalRepo(item, now)
	case item.Command != "":
		return e.evalCommand(item, now), nil
	case len(item.Paths) == 0:
		return Result{
			ItemID:    item.ID,
			Valid:     true,
			Installed: true,
			Source:    SourceTrivial,
			Message:   "no paths declared, trivially satisfied",
			Timestamp: now,
		}, nil
	}

	if found, ok := firstExistingPath(item.Paths); ok {
		return Result{
			ItemID:    item.ID,
			Valid:     true,
			Installed: true,
			Source:    SourceFilesystem,
			Message:   fmt.Sprintf("path exists: %s", found),
			Timestamp: now,
		}, nil
	}

	if item.Key != "" {
		return e.evalKey(ctx, item, now)
	}

	return Result{
		ItemID:    item.ID,
		Valid:     false,
		Installed: false,
		Source:    SourceFilesystem,
		Message:   "no declared path exists",
		Timestamp: now,
	}, nil
}

func (e *Evaluator) evalKey(ctx context.Context, item config.Item, now time.Time) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	storePath := item.Store
	if storePath == "" {
		storePath = e.defaultStore
	}
	if storePath == "" {
		return Result{}, fmt.Errorf("item %q declares key %q but no store is configured", item.ID, item.Key)
	}

	value, found, err := e.store.Lookup(expandHome(storePath), item.Key)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{
			ItemID:    item.ID,
			Valid:     false,
			Installed: false,
			Source:    SourceKeyValue,
			Message:   fmt.Sprintf("key %q not present in store", item.Key),
			Timestamp: now,
		}, nil
	}

	valid := false
	if item.Expect != "" {
		valid = value == item.Expect
	} else {
		for _, s := range e.successValues {
			if value == s {
				valid = true
				break
			}
		}
	}

	msg := fmt.Sprintf("key %q = %q", item.Key, value)
	if !valid {
		msg = fmt.Sprintf("key %q = %q, not a success value", item.Key, value)
	}
	return Result{
		ItemID:    item.ID,
		Valid:     valid,
		Installed: false,
		Source:    SourceKeyValue,
		Message:   msg,
		Timestamp: now,
	}, nil
}

func (e *Evaluator) evalCommand(item config.Item, now time.Time) Result {
	path, err := exec.LookPath(item.Command)
	if err != nil {
		return Result{
			ItemID:    item.ID,
			Valid:     false,
			Installed: false,
			Source:    SourceFilesystem,
			Message:   fmt.Sprintf("command %q not found in PATH", item.Command),
			Timestamp: now,
		}
	}
	return Result{
		ItemID:    item.ID,
		Valid:     true,
		Installed: true,
		Source:    SourceFilesystem,
		Message:   fmt.Sprintf("command available: %s", path),
		Timestamp: now,
	}
}

func (e *Evaluator) evalRepo(item config.Item, now time.Time) (Result, error) {
	rc := item.Repo
	dest := expandHome(rc.Destination)

	info, err := os.Stat(dest)
	if os.IsNotExist(err) {
		return negativeRepo(item, now, "destination does not exist"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", dest, err)
	}
	if !info.IsDir() {
		return negativeRepo(item, now, "destination is not a directory"), nil
	}

	repo, err := git.PlainOpen(dest)
	if err == git.ErrRepositoryNotExists {
		return negativeRepo(item, now, "destination is not a git repository"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("open repository at %s: %w", dest, err)
	}

	if rc.URL != "" {
		remote, err := repo.Remote("origin")
		if err != nil {
			return negativeRepo(item, now, "remote origin not configured"), nil
		}
		urls := remote.Config().URLs
		if len(urls) == 0 || urls[0] != rc.URL {
			got := "none"
			if len(urls) > 0 {
				got = urls[0]
			}
			return negativeRepo(item, now, fmt.Sprintf("remote origin is %s, want %s", got, rc.URL)), nil
		}
	}

	if rc.Branch != "" {
		head, err := repo.Head()
		if err != nil {
			return negativeRepo(item, now, "cannot resolve HEAD"), nil
		}
		if head.Name().Short() != rc.Branch {
			return negativeRepo(item, now, fmt.Sprintf("on branch %s, want %s", head.Name().Short(), rc.Branch)), nil
		}
	}

	return Result{
		ItemID:    item.ID,
		Valid:     true,
		Installed: true,
		Source:    SourceFilesystem,
		Message:   fmt.Sprintf("repository present at %s", dest),
		Timestamp: now,
	}, nil
}

func negativeRepo(item config.Item, now time.Time, msg string) Result {
	return Result{
		ItemID:    item.ID,
		Valid:     false,
		Installed: false,
		Source:    SourceFilesystem,
		Message:   msg,
		Timestamp: now,
	}
}

func firstExistingPath(paths []string) (string, bool) {
	for _, p := range paths {
		expanded := expandHome(p)
		if _, err := os.Stat(expanded); err == nil {
			return expanded, true
		}
	}
	return "", false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
