package prefetch

import (
	"fmt"
	"time"

	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/metrics"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/drakos74/free-prefetch/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// TrainLabel is the storage label of the training set.
	TrainLabel = "train"
	// TestLabel is the storage label of the test set.
	TestLabel = "test"
)

// Report is the persisted outcome of a run.
// It holds the cluster summaries, not the prototypes.
type Report struct {
	ID          string          `json:"id"`
	Time        time.Time       `json:"time"`
	Config      Config          `json:"config"`
	Iterations  int             `json:"iterations"`
	Converged   bool            `json:"converged"`
	Degenerate  int             `json:"degenerate"`
	Clusters    []ClusterReport `json:"clusters"`
	Performance ml.Performance  `json:"performance"`
	// Usage describes the training set the model was built from.
	Usage       Usage           `json:"usage"`
}

// ClusterReport summarises a single cluster.
type ClusterReport struct {
	Label string `json:"label"`
	ml.Summary
}

func newReport(cfg Config, m ml.Model, p ml.Performance) Report {
	clusters := make([]ClusterReport, len(m.Clusters))
	for i, c := range m.Clusters {
		clusters[i] = ClusterReport{
			Label:   m.Label(c),
			Summary: c.Summary,
		}
	}
	return Report{
		ID:          uuid.New().String(),
		Time:        time.Now(),
		Config:      cfg,
		Iterations:  m.Iterations,
		Converged:   m.Converged,
		Degenerate:  m.Degenerate,
		Clusters:    clusters,
		Performance: p,
	}
}

// Key is the storage key of the report.
func (r Report) Key() storage.Key {
	return storage.Key{
		Hash:  r.Config.Seed,
		Name:  r.Config.Name,
		Label: r.ID,
	}
}

// Run trains the configured clusterer on the space, evaluates it on the test set
// and stores the report. A nil store discards the report.
func Run(cfg Config, space *model.Space, store storage.Persistence) (Report, ml.Model, error) {
	if store == nil {
		store = storage.NewVoidStorage()
	}
	report, m, err := run(cfg, space, store)
	metrics.Observer.Run(cfg.Algorithm, err)
	return report, m, err
}

func run(cfg Config, space *model.Space, store storage.Persistence) (Report, ml.Model, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Report{}, ml.Model{}, fmt.Errorf("invalid config: %w", err)
	}
	if space == nil {
		return Report{}, ml.Model{}, fmt.Errorf("no vector space: %w", model.ConfigErr)
	}
	if space.Dim != cfg.Dim {
		return Report{}, ml.Model{}, fmt.Errorf("space dimension %d does not match config %d: %w", space.Dim, cfg.Dim, model.ConfigErr)
	}

	clusterer, err := cfg.Clusterer()
	if err != nil {
		return Report{}, ml.Model{}, fmt.Errorf("could not create clusterer: %w", err)
	}

	m, err := clusterer.Train(space)
	if err != nil {
		log.Error().
			Err(err).
			Str("name", cfg.Name).
			Str("algorithm", cfg.Algorithm).
			Msg("could not train")
		return Report{}, ml.Model{}, fmt.Errorf("could not train: %w", err)
	}

	p, err := m.Evaluate(space.Test, cfg.Threshold)
	if err != nil {
		return Report{}, m, fmt.Errorf("could not evaluate: %w", err)
	}
	if err := p.Err(); err != nil {
		log.Warn().
			Err(err).
			Str("name", cfg.Name).
			Str("algorithm", cfg.Algorithm).
			Float64("threshold", cfg.Threshold).
			Msg("performance metric undefined")
	}
	metrics.Observer.Performance(cfg.Algorithm, p.HitRate, p.Accuracy)

	report := newReport(cfg, m, p)
	report.Usage = Describe(space.Train, space.Dim)
	if err := store.Store(report.Key(), report); err != nil {
		log.Error().
			Err(err).
			Str("key", fmt.Sprintf("%+v", report.Key())).
			Msg("could not store report")
		return report, m, fmt.Errorf("could not store report: %w", err)
	}

	log.Info().
		Str("id", report.ID).
		Str("name", cfg.Name).
		Str("algorithm", cfg.Algorithm).
		Int("clients", space.Size()).
		Int("iterations", m.Iterations).
		Bool("converged", m.Converged).
		Float64("hitrate", p.HitRate).
		Float64("accuracy", p.Accuracy).
		Msg("run complete")

	return report, m, nil
}

// LoadSpace loads the train and test sets stored under the given name.
func LoadSpace(store storage.Persistence, name string, dim int) (*model.Space, error) {
	var train, test [][]float64
	if err := store.Load(storage.Key{Name: name, Label: TrainLabel}, &train); err != nil {
		return nil, fmt.Errorf("could not load training set '%s': %w", name, err)
	}
	if err := store.Load(storage.Key{Name: name, Label: TestLabel}, &test); err != nil {
		return nil, fmt.Errorf("could not load test set '%s': %w", name, err)
	}
	return model.NewSpace(dim, train, test)
}

// StoreSpace stores the train and test sets of the space under the given name.
func StoreSpace(store storage.Persistence, name string, space *model.Space) error {
	if err := store.Store(storage.Key{Name: name, Label: TrainLabel}, space.Train.Raw()); err != nil {
		return fmt.Errorf("could not store training set '%s': %w", name, err)
	}
	if err := store.Store(storage.Key{Name: name, Label: TestLabel}, space.Test.Raw()); err != nil {
		return fmt.Errorf("could not store test set '%s': %w", name, err)
	}
	return nil
}
