// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"code.mojo.dev/mojo/models/db"
	"code.mojo.dev/mojo/modules/cache"
	"code.mojo.dev/mojo/modules/log"
	"code.mojo.dev/mojo/modules/setting"
	"code.mojo.dev/mojo/modules/util"

	"gopkg.in/yaml.v3"
)

// ErrPhaseNotExist represents a "PhaseNotExist" kind of error.
type ErrPhaseNotExist struct {
	ID    int64
	Title string
}

// IsErrPhaseNotExist checks if an error is a ErrPhaseNotExist.
func IsErrPhaseNotExist(err error) bool {
	_, ok := err.(ErrPhaseNotExist)
	return ok
}

func (err ErrPhaseNotExist) Error() string {
	return fmt.Sprintf("phase does not exist [id: %d, title: %s]", err.ID, err.Title)
}

func (err ErrPhaseNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Phase is a configured pipeline stage, phases are worked through in ascending Order
type Phase struct {
	ID    int64  `xorm:"pk autoincr" yaml:"-"`
	Title string `xorm:"UNIQUE NOT NULL" yaml:"title"`
	Order int64  `xorm:"'sort_order' INDEX NOT NULL DEFAULT 0" yaml:"order"`
	Skill string `yaml:"skill"`
}

var (
	phaseCacheOnce sync.Once
	phaseCache     *cache.LRU[int64, *Phase]
)

func init() {
	db.RegisterModel(new(Phase), func() error {
		// the table may have been recreated, drop whatever was cached for it
		if phaseCache != nil {
			phaseCache.Purge()
		}
		return nil
	})
}

func getPhaseCache() *cache.LRU[int64, *Phase] {
	phaseCacheOnce.Do(func() {
		var err error
		phaseCache, err = cache.NewLRU[int64, *Phase]("phase", setting.Mojo.PhaseCacheSize)
		if err != nil {
			log.Error("Unable to create phase cache, falling back to 128 entries: %v", err)
			phaseCache, _ = cache.NewLRU[int64, *Phase]("phase", 128)
		}
	})
	return phaseCache
}

// GetPhaseByID returns the phase with id, phases are served from an in-memory
// cache. The returned phase is shared and must not be modified.
func GetPhaseByID(ctx context.Context, id int64) (*Phase, error) {
	return getPhaseCache().Get(id, func() (*Phase, error) {
		p, has, err := db.GetByID[Phase](ctx, id)
		if err != nil {
			return nil, err
		} else if !has {
			return nil, ErrPhaseNotExist{ID: id}
		}
		return p, nil
	})
}

// GetPhaseByTitle looks a phase up by its title, ignoring case
func GetPhaseByTitle(ctx context.Context, title string) (*Phase, error) {
	p := new(Phase)
	has, err := db.GetEngine(ctx).Where("LOWER(title) = ?", strings.ToLower(title)).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrPhaseNotExist{Title: title}
	}
	return p, nil
}

// GetPhases returns all phases in pipeline order
func GetPhases(ctx context.Context) ([]*Phase, error) {
	phases := make([]*Phase, 0, 8)
	return phases, db.GetEngine(ctx).Asc("sort_order", "id").Find(&phases)
}

// CreatePhase inserts a new phase
func CreatePhase(ctx context.Context, p *Phase) error {
	if p.Title == "" {
		return util.NewInvalidArgumentErrorf("phase title is empty")
	}
	return db.Insert(ctx, p)
}

// UpsertPhases creates the phases whose title is unknown and updates the order
// and skill of the others.
func UpsertPhases(ctx context.Context, phases []*Phase) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		for _, p := range phases {
			existing, err := GetPhaseByTitle(ctx, p.Title)
			if IsErrPhaseNotExist(err) {
				if err := CreatePhase(ctx, p); err != nil {
					return err
				}
				continue
			} else if err != nil {
				return err
			}

			p.ID = existing.ID
			if _, err := db.GetEngine(ctx).ID(p.ID).Cols("sort_order", "skill").Update(p); err != nil {
				return err
			}
			getPhaseCache().Remove(p.ID)
		}
		return nil
	})
}

// ParsePhasesYAML reads a YAML list of phases, each with title, order and skill keys
func ParsePhasesYAML(data []byte) ([]*Phase, error) {
	var phases []*Phase
	if err := yaml.Unmarshal(data, &phases); err != nil {
		return nil, fmt.Errorf("parse phases: %w", err)
	}
	for i, p := range phases {
		if p == nil || p.Title == "" {
			return nil, util.NewInvalidArgumentErrorf("phase %d has no title", i+1)
		}
	}
	return phases, nil
}
