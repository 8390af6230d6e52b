package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vibechart/internal/chartconfig"
	datasetrepo "vibechart/internal/gateway/repository/dataset"
	sessionrepo "vibechart/internal/gateway/repository/session"
)

const datasetObject = "dataset.json"

// ErrIncomplete is returned when a save request lacks a session, rows or a
// configuration.
var ErrIncomplete = errors.New("session ID, chart data, and config are required")

// State is everything a client needs to restore a session.
type State struct {
	SessionID  string             `json:"sessionId"`
	Chart      *sessionrepo.Chart `json:"chart"`
	Version    int                `json:"version,omitempty"`
	ChartData  []map[string]any   `json:"chartData"`
	DatasetURL string             `json:"datasetUrl,omitempty"`
	SavedAt    *time.Time         `json:"savedAt,omitempty"`
}

type SaveInput struct {
	SessionID   string
	ChartData   []map[string]any
	Config      chartconfig.Tree
	Name        string
	Description string
}

// Service persists chart configurations and their dataset rows per session.
type Service struct {
	sessions sessionrepo.Store
	datasets datasetrepo.Store
	logger   *zap.Logger
	now      func() time.Time
}

func New(sessions sessionrepo.Store, datasets datasetrepo.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, datasets: datasets, logger: logger, now: time.Now}
}

// Load registers the session when new and returns its latest chart, if any.
func (s *Service) Load(ctx context.Context, sessionID string) (*State, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, fmt.Errorf("load chart: %w", ErrIncomplete)
	}
	if err := s.sessions.Touch(ctx, id); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	state := &State{SessionID: id}
	var raw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.sessions.LoadLatest(gctx, id)
		if errors.Is(err, sessionrepo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		state.Chart = &snap.Chart
		state.Version = snap.Version
		state.SavedAt = &snap.SavedAt
		return nil
	})
	g.Go(func() error {
		var err error
		raw, err = s.datasets.Get(gctx, id, datasetObject)
		if errors.Is(err, datasetrepo.ErrNotFound) {
			raw = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		url, err := s.datasets.GetURL(gctx, id, datasetObject)
		if err != nil {
			s.logger.Warn("dataset url unavailable", zap.String("session_id", id), zap.Error(err))
			return nil
		}
		state.DatasetURL = url
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &state.ChartData); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
	}
	return state, nil
}

// Save validates cfg and stores it together with the dataset rows. The chart
// keeps its ID across saves; the first save assigns one.
func (s *Service) Save(ctx context.Context, in SaveInput) (*State, error) {
	id := strings.TrimSpace(in.SessionID)
	if id == "" || in.ChartData == nil || in.Config == nil {
		return nil, ErrIncomplete
	}
	if _, err := chartconfig.Validate(in.Config); err != nil {
		return nil, err
	}
	rows, err := json.Marshal(in.ChartData)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	chart := sessionrepo.Chart{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Config:      in.Config,
	}
	prev, err := s.sessions.LoadLatest(ctx, id)
	switch {
	case err == nil:
		chart.ID = prev.Chart.ID
		if chart.Name == "" {
			chart.Name = prev.Chart.Name
		}
		if chart.Description == "" {
			chart.Description = prev.Chart.Description
		}
	case errors.Is(err, sessionrepo.ErrNotFound):
		chart.ID = uuid.NewString()
	default:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if chart.Name == "" {
		chart.Name = "Chart " + s.now().Format("2006-01-02")
	}

	var saved sessionrepo.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		saved, err = s.sessions.Save(gctx, sessionrepo.Snapshot{SessionID: id, Chart: chart})
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.datasets.Put(gctx, id, datasetObject, rows); err != nil {
			return fmt.Errorf("save dataset: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("chart saved",
		zap.String("session_id", id),
		zap.String("chart_id", chart.ID),
		zap.Int("version", saved.Version),
		zap.Int("rows", len(in.ChartData)))
	return &State{
		SessionID: id,
		Chart:     &saved.Chart,
		Version:   saved.Version,
		ChartData: in.ChartData,
		SavedAt:   &saved.SavedAt,
	}, nil
}
