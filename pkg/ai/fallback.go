package ai

import (
	"context"
	"errors"
	"fmt"

	clog "github.com/xrsl/atscv/pkg/log"
)

// Settings describe the client a run needs.
type Settings struct {
	Model         string
	FallbackModel string
	Temperature   float64
	// Validate probes the model right after construction so a rejected
	// model is detected before any work is done
	Validate bool
}

// opener is swapped out in tests
var opener = NewClient

// New builds the run's client. When the primary model is rejected by its
// provider and a distinct fallback is configured, the fallback is used and
// the cause is logged. All other failures are returned as *ConfigError.
func New(ctx context.Context, s Settings) (Client, error) {
	client, err := open(ctx, s.Model, s)
	if err == nil {
		return client, nil
	}

	var cerr *ConfigError
	if !errors.As(err, &cerr) || cerr.Kind != KindModelRejected ||
		s.FallbackModel == "" || s.FallbackModel == s.Model {
		return nil, err
	}

	clog.Warn("primary model rejected, using fallback",
		"model", s.Model,
		"fallback", s.FallbackModel,
		"cause", cerr.Err,
	)

	fallback, fbErr := open(ctx, s.FallbackModel, s)
	if fbErr != nil {
		return nil, fmt.Errorf("%w; fallback failed: %v", err, fbErr)
	}
	return fallback, nil
}

func open(ctx context.Context, model string, s Settings) (Client, error) {
	client, err := opener(model, s.Temperature)
	if err != nil {
		return nil, Classify(model, err)
	}
	if !s.Validate {
		return client, nil
	}
	if v, ok := client.(Validator); ok {
		if err := v.Validate(ctx); err != nil {
			client.Close()
			return nil, Classify(model, err)
		}
	}
	clog.Debug("llm client ready", "model", model)
	return client, nil
}
