package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/proforma-service/internal/app"
	"github.com/proforma-service/internal/config"
	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/pkg/logger"
	"github.com/proforma-service/internal/pkg/validator"
	"github.com/proforma-service/internal/proforma"
	"github.com/proforma-service/internal/repository/cache"
	redisRepo "github.com/proforma-service/internal/repository/redis"
	"github.com/proforma-service/internal/usecase"
	"github.com/proforma-service/internal/usecase/dto"
)

type referenceOptions struct {
	form      string
	parking   string
	breakEven bool
	asJSON    bool
}

func (g *globalFlags) logger() (*zap.Logger, error) {
	return logger.New(g.logLevel)
}

func (g *globalFlags) engine(log *zap.Logger) (*proforma.ProForma, error) {
	return app.LoadEngine(&config.Config{ProForma: config.ProFormaConfig{ConfigPath: g.configPath}}, log)
}

func runDefaults(w io.Writer) error {
	return proforma.DumpConfig(w, proforma.DefaultConfig())
}

func runValidate(w io.Writer, path string) error {
	cfg, err := proforma.LoadConfigFile(path)
	if err != nil {
		return err
	}
	p, err := proforma.New(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Result: VALID (%d forms, %d fars, parking %v)\n",
		len(p.Forms()), len(cfg.Fars), p.ParkingConfigs())
	return nil
}

func runReference(w io.Writer, g *globalFlags, opts referenceOptions) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	p, err := g.engine(log)
	if err != nil {
		return err
	}
	uc, err := usecase.NewFeasibilityUseCase(p, nil, log, 0)
	if err != nil {
		return err
	}

	if opts.breakEven {
		resp, err := uc.BreakEven(opts.form, opts.parking)
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(w, resp)
		}
		return printBreakEven(w, resp)
	}

	ref, err := uc.Reference(opts.form, opts.parking)
	if err != nil {
		return err
	}
	if opts.asJSON {
		return writeJSON(w, ref)
	}
	return printReference(w, ref)
}

func runLookup(ctx context.Context, w io.Writer, g *globalFlags, sitesPath string, forms []string) error {
	sites, err := readSites(sitesPath)
	if err != nil {
		return err
	}
	log, err := g.logger()
	if err != nil {
		return err
	}
	p, err := g.engine(log)
	if err != nil {
		return err
	}
	uc, err := usecase.NewFeasibilityUseCase(p, nil, log, 0)
	if err != nil {
		return err
	}

	byForm, err := uc.LookupForms(ctx, forms, sites)
	if err != nil {
		return err
	}
	return writeJSON(w, dto.MultiFormResponse{Forms: byForm})
}

func runImport(ctx context.Context, w io.Writer, g *globalFlags, sitesPath string) error {
	sites, err := readSites(sitesPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := g.logger()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Sites.SaveSites(ctx, sites); err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d sites into %s\n", len(sites), store.Backend)
	return nil
}

// runQueue publishes a run request for the worker; only Redis is needed
func runQueue(ctx context.Context, w io.Writer, g *globalFlags, forms []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := g.logger()
	if err != nil {
		return err
	}
	p, err := g.engine(log)
	if err != nil {
		return err
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	uc, err := usecase.NewFeasibilityUseCase(p, nil, log, 0)
	if err != nil {
		return err
	}
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)
	runUC := usecase.NewRunUseCase(uc, nil, nil, streamRepo, log)

	resp, err := runUC.StartRun(ctx, dto.RunRequest{Forms: forms})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Queued run %s on %s (forms: %v)\n", resp.RunID, resp.Stream, resp.Forms)
	return nil
}

// readSites loads a JSON array of sites and applies the API's validation rules
func readSites(path string) ([]domain.Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var req dto.FeasibilityRequest
	if err := json.Unmarshal(raw, &req.Sites); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("invalid sites in %s: %w", path, err)
	}
	return req.DomainSites(), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
