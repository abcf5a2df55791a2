package duoskema

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/duoskema/duoskema/persistence"
)

// Options tunes one compilation. The zero value (or nil) compiles with
// caching enabled, no custom messages, and lenient unknown-key handling.
type Options struct {
	// DisableCache bypasses both cache lookup and storage for this call.
	DisableCache bool
	// StrictMode rejects unknown input keys during validation.
	StrictMode bool
	// CustomMessages overrides synthesized messages, keyed "<field>.<rule>".
	CustomMessages map[string]string
	// Persistence configures the storage-side schema output.
	Persistence *persistence.Options
	// Cache overrides the process-wide default cache.
	Cache Cache
	// Logger receives debug events for cache activity and compile timing.
	Logger *zerolog.Logger
}

func (o *Options) customMessages() map[string]string {
	if o == nil {
		return nil
	}
	return o.CustomMessages
}

func (o *Options) strictMode() bool { return o != nil && o.StrictMode }

func (o *Options) persistenceOptions() *persistence.Options {
	if o == nil {
		return nil
	}
	return o.Persistence
}

func (o *Options) cacheOrDefault() Cache {
	if o != nil && o.Cache != nil {
		return o.Cache
	}
	return defaultCache
}

var nopLogger = zerolog.Nop()

func (o *Options) log() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		return &nopLogger
	}
	return o.Logger
}

// CompiledPair is the memoized compilation result for one content signature.
// Callers may rely on reference equality across repeated compilations of
// identical content while the entry stays cached.
type CompiledPair struct {
	Persistence *persistence.Schema
	Validation  *ValidationSchema
}

// CompileSchemas compiles a definition into its persistence and validation
// schemas. The two field compilers run independently; neither depends on the
// other's output. A cache hit returns the previously stored pair by
// reference.
func CompileSchemas(def Definition, opt *Options) (*CompiledPair, error) {
	log := opt.log()

	var key string
	var store Cache
	if opt == nil || !opt.DisableCache {
		store = opt.cacheOrDefault()
		key = contentSignature(def, opt)
		if pair, ok := store.Get(key); ok {
			log.Debug().Str("key", key).Msg("schema cache hit")
			return pair, nil
		}
	}

	started := time.Now()
	vs, err := compileValidationSchema(def, opt)
	if err != nil {
		return nil, err
	}
	ps := compilePersistenceSchema(def, opt.persistenceOptions())
	pair := &CompiledPair{Persistence: ps, Validation: vs}

	if store != nil {
		store.Set(key, pair)
	}
	log.Debug().
		Str("key", key).
		Int("fields", len(def)).
		Dur("elapsed", time.Since(started)).
		Msg("compiled schema pair")
	return pair, nil
}

// MustCompileSchemas is CompileSchemas for definitions known valid at startup;
// it panics on compilation errors.
func MustCompileSchemas(def Definition, opt *Options) *CompiledPair {
	pair, err := CompileSchemas(def, opt)
	if err != nil {
		panic(err)
	}
	return pair
}

// CompileValidationSchema compiles only the validation side. It fails fast on
// the first unresolvable type token.
func CompileValidationSchema(def Definition, opt *Options) (*ValidationSchema, error) {
	return compileValidationSchema(def, opt)
}

// CompilePersistenceSchema compiles only the persistence side. It never
// fails: unknown type tokens pass through as literal values.
func CompilePersistenceSchema(def Definition, popt *persistence.Options) *persistence.Schema {
	return compilePersistenceSchema(def, popt)
}
