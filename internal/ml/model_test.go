package ml

import (
	"math"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

func TestStandardScaler(t *testing.T) {
	scaler := &StandardScaler{}
	samples := [][]float64{
		{1, 10},
		{2, 10},
		{3, 10},
	}
	if err := scaler.Fit(samples); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	if scaler.Means[0] != 2 || scaler.Means[1] != 10 {
		t.Fatalf("unexpected means: %v", scaler.Means)
	}
	// A constant column keeps std 1 so Transform never divides by zero.
	if scaler.Stds[1] != 1 {
		t.Fatalf("constant column std must be 1, got %v", scaler.Stds[1])
	}

	out := scaler.Transform([]float64{2, 10})
	if out[0] != 0 || out[1] != 0 {
		t.Fatalf("mean input must map to zero, got %v", out)
	}

	if err := scaler.Fit(nil); err == nil {
		t.Fatal("expected an error for empty input")
	}
	if err := scaler.Fit([][]float64{{1, 2}, {1}}); err == nil {
		t.Fatal("expected an error for ragged input")
	}
}

// syntheticSamples builds rows where the target is a noiseless linear
// function of the first feature, an easy shape for a regression forest.
func syntheticSamples(n int) []Sample {
	rng := rand.New(rand.NewSource(1))
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		x := rng.Float64() * 10
		out = append(out, Sample{
			Features: []float64{x, rng.Float64()},
			Target:   1 + x, // ranks 1..11
		})
	}
	return out
}

func TestTrainForest_PredictsWithinTargetRange(t *testing.T) {
	samples := syntheticSamples(200)
	features := make([][]float64, len(samples))
	targets := make([]float64, len(samples))
	for i, s := range samples {
		features[i] = s.Features
		targets[i] = s.Target
	}

	rng := rand.New(rand.NewSource(7))
	forest := TrainForest(features, targets, ForestConfig{NumTrees: 20}, rng)
	if len(forest.Trees) != 20 {
		t.Fatalf("expected 20 trees, got %d", len(forest.Trees))
	}

	for _, probe := range [][]float64{{0.5, 0.5}, {5, 0.5}, {9.5, 0.5}} {
		got := forest.Predict(probe)
		if got < 1 || got > 11 {
			t.Fatalf("prediction %v outside target range for %v", got, probe)
		}
	}

	// Low inputs must predict lower than high inputs.
	if forest.Predict([]float64{0.5, 0.5}) >= forest.Predict([]float64{9.5, 0.5}) {
		t.Fatal("forest did not learn the monotone relationship")
	}

	empty := TrainForest(nil, nil, ForestConfig{}, rng)
	if got := empty.Predict([]float64{1, 2}); got != 0 {
		t.Fatalf("empty forest must predict 0, got %v", got)
	}
}

func TestTrain(t *testing.T) {
	samples := syntheticSamples(120)

	model, err := Train(samples, TrainConfig{Seed: 42, Forest: ForestConfig{NumTrees: 15}})
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}

	if model.Metrics.TrainSamples+model.Metrics.TestSamples != len(samples) {
		t.Fatalf("split does not cover the samples: %+v", model.Metrics)
	}
	if model.Metrics.TestSamples == 0 {
		t.Fatal("expected a held-out test split")
	}
	// The relationship is noiseless, so the forest should track it closely.
	if model.Metrics.MAE > 2.0 {
		t.Fatalf("MAE %v too high for a noiseless target", model.Metrics.MAE)
	}
	if !reflect.DeepEqual(model.FeatureNames, FeatureNames) {
		t.Fatal("model must record the feature ordering")
	}

	if _, err := Train(samples[:5], TrainConfig{}); err == nil {
		t.Fatal("expected an error for too few samples")
	}
}

func TestTrain_Deterministic(t *testing.T) {
	samples := syntheticSamples(100)
	cfg := TrainConfig{Seed: 99, Forest: ForestConfig{NumTrees: 10}}

	first, err := Train(samples, cfg)
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}
	second, err := Train(samples, cfg)
	if err != nil {
		t.Fatalf("second train failed: %v", err)
	}

	probe := []float64{4.2, 0.3}
	if first.PredictRank(probe) != second.PredictRank(probe) {
		t.Fatal("same seed must reproduce the same model")
	}
	if first.Metrics != second.Metrics {
		t.Fatalf("metrics diverged: %+v vs %+v", first.Metrics, second.Metrics)
	}
}

func TestModel_PredictPlayerValue(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	samples := make([]Sample, 0, 100)
	for i := 0; i < 100; i++ {
		features := make([]float64, len(FeatureNames))
		for d := range features {
			features[d] = rng.Float64() * 100
		}
		samples = append(samples, Sample{Features: features, Target: float64(1 + i%13)})
	}

	model, err := Train(samples, TrainConfig{Seed: 3, Forest: ForestConfig{NumTrees: 10}})
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}

	candidate := player.Player{
		ID:       "h1",
		Name:     "Hitter One",
		Position: player.PositionOutfield,
		ADP:      fp(10),
		Projection: player.Projection{
			HomeRuns: fp(30),
			OBP:      fp(0.350),
		},
	}
	ctx := PickContext{PickNumber: 5, Round: 1, TotalTeams: 13}

	value, err := model.PredictPlayerValue(candidate, ctx)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	rank := model.PredictRank(ExtractFeatures(candidate, ctx))
	if value != -rank {
		t.Fatalf("value must be the negated rank: %v vs %v", value, rank)
	}

	untrained := &Model{}
	if _, err := untrained.PredictPlayerValue(candidate, ctx); err == nil {
		t.Fatal("untrained model must refuse to predict")
	}
}

func TestModel_SaveLoad(t *testing.T) {
	samples := syntheticSamples(80)
	model, err := Train(samples, TrainConfig{Seed: 11, Forest: ForestConfig{NumTrees: 5}})
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "models", "value.json")
	if err := model.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	probe := []float64{3.3, 0.7}
	if got, want := loaded.PredictRank(probe), model.PredictRank(probe); math.Abs(got-want) > 1e-12 {
		t.Fatalf("loaded model diverged: %v vs %v", got, want)
	}
	if loaded.Metrics != model.Metrics {
		t.Fatalf("metrics not persisted: %+v vs %+v", loaded.Metrics, model.Metrics)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
