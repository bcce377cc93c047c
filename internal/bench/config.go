package bench

import (
	"os"
	"runtime"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/observability"
)

type ContainerKind string

const (
	MapKind      ContainerKind = "map"
	MultiMapKind ContainerKind = "multimap"
	SetKind      ContainerKind = "set"
	MultiSetKind ContainerKind = "multiset"
)

func (kind ContainerKind) multi() bool {
	return kind == MultiMapKind || kind == MultiSetKind
}

type KeyPattern string

const (
	Ascending  KeyPattern = "ascending"
	Descending KeyPattern = "descending"
	Random     KeyPattern = "random"
)

type AllocatorKind string

const (
	HeapAllocator AllocatorKind = "heap"
	PoolAllocator AllocatorKind = "pool"
)

// Workload drives a single container through insert, lookup, erase
// while iterating and validation.
type Workload struct {
	Name      string        `yaml:"name"`
	Container ContainerKind `yaml:"container"`
	Keys      int           `yaml:"keys"`
	Pattern   KeyPattern    `yaml:"pattern"`
	// Duplicates is the copies inserted per key, multi containers only.
	Duplicates int     `yaml:"duplicates"`
	EraseRatio float64 `yaml:"eraseRatio"`
	Validate   bool    `yaml:"validate"`
	// Allocator of the tree nodes, heap by default.
	Allocator AllocatorKind `yaml:"allocator"`
}

type Config struct {
	Parallelism int                           `yaml:"parallelism"`
	Metrics     observability.MetricsExporter `yaml:"metrics"`
	Seed        uint64                        `yaml:"seed"`
	Workloads   []Workload                    `yaml:"workloads"`
}

// DefaultConfig runs every container kind once with each key pattern.
func DefaultConfig() *Config {
	cfg := &Config{
		Parallelism: runtime.GOMAXPROCS(0),
		Metrics:     observability.NoneExporter,
		Seed:        0x5eed,
	}
	patterns := []KeyPattern{Ascending, Descending, Random}
	kinds := []ContainerKind{MapKind, MultiMapKind, SetKind, MultiSetKind}
	for _, kind := range kinds {
		for _, p := range patterns {
			cfg.Workloads = append(cfg.Workloads, Workload{
				Name:       string(kind) + "-" + string(p),
				Container:  kind,
				Keys:       10000,
				Pattern:    p,
				EraseRatio: 0.5,
				Validate:   true,
				Allocator:  PoolAllocator,
			})
		}
	}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	if cfg.Metrics == "" {
		cfg.Metrics = observability.NoneExporter
	}
	for i := range cfg.Workloads {
		w := &cfg.Workloads[i]
		if w.Name == "" {
			w.Name = "workload-" + strconv.Itoa(i)
		}
		if w.Pattern == "" {
			w.Pattern = Random
		}
		if w.Allocator == "" {
			w.Allocator = HeapAllocator
		}
		if w.Duplicates <= 0 || !w.Container.multi() {
			w.Duplicates = 1
		}
	}
}

// Validate reports every malformed workload at once.
func (cfg *Config) Validate() error {
	var err error
	if _, e := observability.ParseMetricsExporter(string(cfg.Metrics)); e != nil {
		err = multierr.Append(err, e)
	}
	if len(cfg.Workloads) == 0 {
		err = multierr.Append(err, infra.NewErrorStack("[bench] no workloads"))
	}
	for _, w := range cfg.Workloads {
		switch w.Container {
		case MapKind, MultiMapKind, SetKind, MultiSetKind:
		default:
			err = multierr.Append(err, infra.NewErrorStack("[bench] workload "+w.Name+": unknown container "+string(w.Container)))
		}
		switch w.Pattern {
		case Ascending, Descending, Random:
		default:
			err = multierr.Append(err, infra.NewErrorStack("[bench] workload "+w.Name+": unknown pattern "+string(w.Pattern)))
		}
		if w.Allocator != HeapAllocator && w.Allocator != PoolAllocator {
			err = multierr.Append(err, infra.NewErrorStack("[bench] workload "+w.Name+": unknown allocator "+string(w.Allocator)))
		}
		if w.Keys <= 0 {
			err = multierr.Append(err, infra.NewErrorStack("[bench] workload "+w.Name+": keys must be positive"))
		}
		if w.EraseRatio < 0 || w.EraseRatio > 1 {
			err = multierr.Append(err, infra.NewErrorStack("[bench] workload "+w.Name+": eraseRatio out of [0, 1]"))
		}
	}
	return err
}

// Parse decodes a YAML config and fills the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] parse config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] read config")
	}
	return Parse(data)
}
