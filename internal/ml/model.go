package ml

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"gonum.org/v1/gonum/stat"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// Sample is one training row: engineered features and the drafting team's
// final roto rank.
type Sample struct {
	Features []float64 `json:"features"`
	Target   float64   `json:"target"`
}

// Metrics summarizes a training run on the held-out split.
type Metrics struct {
	TrainSamples int     `json:"train_samples"`
	TestSamples  int     `json:"test_samples"`
	MAE          float64 `json:"mae"`
	R2           float64 `json:"r2"`
}

// Model is a trained value predictor: scaler plus forest, persisted
// together so inference stays consistent with training.
type Model struct {
	FeatureNames []string        `json:"feature_names"`
	Scaler       *StandardScaler `json:"scaler"`
	Forest       *Forest         `json:"forest"`
	Metrics      Metrics         `json:"metrics"`
	TrainedAt    time.Time       `json:"trained_at"`
}

// TrainConfig controls the split and the forest shape. Seed fixes every
// random choice so a rerun reproduces the model bit for bit.
type TrainConfig struct {
	Seed      int64        `json:"seed"`
	TestRatio float64      `json:"test_ratio"`
	Forest    ForestConfig `json:"forest"`
}

// Train fits a model on an 80/20 split (or TestRatio when set).
func Train(samples []Sample, cfg TrainConfig) (*Model, error) {
	if len(samples) < 10 {
		return nil, fmt.Errorf("need at least 10 samples, got %d", len(samples))
	}
	if cfg.TestRatio <= 0 || cfg.TestRatio >= 1 {
		cfg.TestRatio = 0.2
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	shuffled := append([]Sample(nil), samples...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := len(shuffled) - int(float64(len(shuffled))*cfg.TestRatio)
	train, test := shuffled[:cut], shuffled[cut:]

	trainFeatures := make([][]float64, len(train))
	trainTargets := make([]float64, len(train))
	for i, s := range train {
		trainFeatures[i] = s.Features
		trainTargets[i] = s.Target
	}

	scaler := &StandardScaler{}
	if err := scaler.Fit(trainFeatures); err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	forest := TrainForest(scaler.TransformAll(trainFeatures), trainTargets, cfg.Forest, rng)

	model := &Model{
		FeatureNames: append([]string(nil), FeatureNames...),
		Scaler:       scaler,
		Forest:       forest,
		TrainedAt:    time.Now().UTC(),
	}
	model.Metrics = evaluate(model, train, test)
	return model, nil
}

func evaluate(model *Model, train, test []Sample) Metrics {
	m := Metrics{TrainSamples: len(train), TestSamples: len(test)}
	if len(test) == 0 {
		return m
	}

	predicted := make([]float64, len(test))
	actual := make([]float64, len(test))
	absErr := 0.0
	for i, s := range test {
		predicted[i] = model.PredictRank(s.Features)
		actual[i] = s.Target
		absErr += math.Abs(predicted[i] - actual[i])
	}
	m.MAE = absErr / float64(len(test))
	m.R2 = stat.RSquaredFrom(predicted, actual, nil)
	return m
}

// PredictRank returns the forest's estimate of the drafting team's final
// roto rank for a raw (unscaled) feature vector.
func (m *Model) PredictRank(features []float64) float64 {
	return m.Forest.Predict(m.Scaler.Transform(features))
}

// PredictPlayerValue scores a candidate in a pick context. Lower predicted
// rank means a better outcome, so the rank is negated.
func (m *Model) PredictPlayerValue(candidate player.Player, ctx PickContext) (float64, error) {
	if m.Forest == nil || m.Scaler == nil {
		return 0, fmt.Errorf("model is not trained")
	}
	return -m.PredictRank(ExtractFeatures(candidate, ctx)), nil
}

// Save writes the model atomically next to its final path.
func (m *Model) Save(path string) error {
	data, err := sonic.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var model Model
	if err := sonic.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if model.Forest == nil || model.Scaler == nil {
		return nil, fmt.Errorf("model file %s is incomplete", path)
	}
	return &model, nil
}
