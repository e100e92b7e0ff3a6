// Package dataset loads the reference data the recommendation pipeline runs
// on: career titles, the mentor roster, stored roadmaps and the classifier
// artifact.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-compass/internal/classifier"
	"github.com/spigell/career-compass/internal/mentors"
	"github.com/spigell/career-compass/internal/roadmap"
)

// Paths locates each dataset. Entries may be local paths or s3://bucket/key.
type Paths struct {
	Careers  string `mapstructure:"careers"`
	Mentors  string `mapstructure:"mentors"`
	Roadmaps string `mapstructure:"roadmaps"`
	Model    string `mapstructure:"model"`
}

// Datasets is the loaded reference data. Any part may be empty.
type Datasets struct {
	Careers  []string
	Mentors  []mentors.Mentor
	Roadmaps roadmap.Table
	Model    *classifier.NaiveBayes
}

// LoadAll loads every configured dataset concurrently. Unset paths and
// missing files leave the corresponding dataset empty and log a warning;
// unreadable or malformed files fail the load.
func LoadAll(ctx context.Context, src *Source, paths Paths, logger *zap.Logger) (*Datasets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ds := &Datasets{Roadmaps: roadmap.Table{}}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return load(gCtx, src, "careers", paths.Careers, logger, func(r io.Reader) (err error) {
			ds.Careers, err = ReadCareers(r)
			return err
		})
	})
	g.Go(func() error {
		return load(gCtx, src, "mentors", paths.Mentors, logger, func(r io.Reader) (err error) {
			ds.Mentors, err = ReadMentors(r)
			return err
		})
	})
	g.Go(func() error {
		return load(gCtx, src, "roadmaps", paths.Roadmaps, logger, func(r io.Reader) (err error) {
			ds.Roadmaps, err = ReadRoadmaps(r)
			return err
		})
	})
	g.Go(func() error {
		return load(gCtx, src, "model", paths.Model, logger, func(r io.Reader) (err error) {
			ds.Model, err = classifier.LoadNaiveBayes(r)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("datasets loaded",
		zap.Int("careers", len(ds.Careers)),
		zap.Int("mentors", len(ds.Mentors)),
		zap.Int("roadmaps", len(ds.Roadmaps)),
		zap.Bool("model", ds.Model != nil),
	)
	return ds, nil
}

func load(ctx context.Context, src *Source, name, path string, logger *zap.Logger, parse func(io.Reader) error) error {
	path = strings.TrimSpace(path)
	if path == "" {
		logger.Warn("dataset path is not configured", zap.String("dataset", name))
		return nil
	}

	rc, err := src.Open(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("dataset not found, continuing without it", zap.String("dataset", name), zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s dataset: %w", name, err)
	}
	defer rc.Close()

	if err := parse(rc); err != nil {
		return fmt.Errorf("parse %s dataset %s: %w", name, path, err)
	}
	return nil
}
