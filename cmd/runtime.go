package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/config"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

// runtime is the wiring shared by the serve, tui and generate commands.
type runtime struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *store.Store
	router *feature.Router
}

// newRuntime loads the config, opens the request log and builds the model
// gateway. A gateway that cannot be built is logged and left unavailable;
// features then report the model as unavailable instead of failing
// startup. With quiet set nothing is logged, which keeps the terminal UI
// clean.
func newRuntime(cmd *cobra.Command, quiet bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logging.New(cfg.Log)
	if quiet {
		log = logging.Discard()
	}

	s, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}

	gw := llm.NewGatewayFromConfig(cmd.Context(), cfg.LLM, s.EventRepo(), log)
	if gw.Available() {
		log.WithFields(logrus.Fields{
			"provider": cfg.LLM.Provider,
			"model":    gw.ModelID(),
		}).Info("model ready")
	} else {
		log.WithError(gw.Cause()).Warn(feature.UnavailableMessage)
	}

	return &runtime{
		cfg:    cfg,
		log:    log,
		store:  s,
		router: feature.NewRouter(gw, nil),
	}, nil
}

func (r *runtime) Close() error {
	return r.store.Close()
}
