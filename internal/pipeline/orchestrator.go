package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"vibechart/internal/chartconfig"
	"vibechart/internal/translate"
)

// Stage names, in execution order.
const (
	StageTranslate  = "translate"
	StageMerge      = "merge"
	StageBeautify   = "beautify"
	StageValidate   = "validate"
	StageRepair     = "repair"
	StageRevalidate = "revalidate"
)

// Translator produces a configuration patch for one instruction.
type Translator interface {
	Translate(ctx context.Context, in translate.Instruction, current chartconfig.Tree) (*translate.Patch, error)
}

type Request struct {
	Instruction string
	History     []translate.Turn
	// Current is the configuration the instruction applies to. Nil means a new chart.
	Current chartconfig.Tree
}

type Result struct {
	Config *chartconfig.Config
	// Tree is Config in its JSON shape, ready to become the next Current.
	Tree chartconfig.Tree
	// Fallback is set when the model's JSON was unusable and the fixed fallback
	// configuration was merged instead.
	Fallback bool
	// Repaired is set when validation only passed after the fixed-defaults repair.
	Repaired    bool
	JSONRepairs []string
	Stages      []string
}

// Orchestrator runs translate, merge, beautify and validate for one
// instruction. It keeps no state between runs.
type Orchestrator struct {
	translator Translator
	logger     *zap.Logger
}

// New returns an orchestrator. A nil translator yields one whose every run
// fails with ErrMissingCredentials.
func New(t Translator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{translator: t, logger: logger}
}

// Ready reports ErrMissingCredentials when no translator is configured.
func (o *Orchestrator) Ready() error {
	if o.translator == nil {
		return ErrMissingCredentials
	}
	return nil
}

func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if err := o.Ready(); err != nil {
		return nil, err
	}
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		return nil, &RequestShapeError{Field: "userPrompt", Reason: "is required"}
	}
	current := req.Current
	if current == nil {
		current = chartconfig.Tree{}
	}

	start := time.Now()
	res := &Result{}
	log := o.logger.With(zap.String("instruction", instruction))

	res.Stages = append(res.Stages, StageTranslate)
	patch, err := o.translator.Translate(ctx, translate.Instruction{Text: instruction, History: req.History}, current)
	if err != nil {
		log.Error("translation failed", zap.Error(err))
		return nil, err
	}
	res.Fallback = patch.Fallback
	res.JSONRepairs = patch.Repairs

	res.Stages = append(res.Stages, StageMerge)
	merged := chartconfig.Merge(current, patch.Tree)

	res.Stages = append(res.Stages, StageBeautify)
	beautified := chartconfig.Beautify(merged)

	res.Stages = append(res.Stages, StageValidate)
	cfg, verr := chartconfig.Validate(beautified)
	if verr != nil {
		log.Warn("validation failed, applying fixed defaults", zap.Error(verr))
		res.Stages = append(res.Stages, StageRepair, StageRevalidate)
		repaired := chartconfig.ApplyFixedDefaults(beautified)
		cfg, err = chartconfig.Validate(repaired)
		if err != nil {
			log.Error("configuration invalid after repair", zap.Error(err))
			return nil, &ConfigurationError{Initial: verr, Err: err}
		}
		res.Repaired = true
	}

	tree, err := chartconfig.ToTree(cfg)
	if err != nil {
		return nil, err
	}
	res.Config = cfg
	res.Tree = tree

	log.Debug("pipeline finished",
		zap.Strings("stages", res.Stages),
		zap.Bool("fallback", res.Fallback),
		zap.Bool("repaired", res.Repaired),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
