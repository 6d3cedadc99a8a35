// Package clean removes aged upload and synthesized-audio objects. The
// translation rows themselves are never touched; history keeps its text even
// after the audio expires.
package clean

import (
	"context"
	"time"

	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/stores"

	"go.uber.org/zap"
)

type Cleaner struct {
	blobs    stores.Store
	maxAge   time.Duration
	prefixes []string
}

func New(blobs stores.Store, maxAge time.Duration) *Cleaner {
	return &Cleaner{
		blobs:    blobs,
		maxAge:   maxAge,
		prefixes: []string{"uploads/", "output_audio/"},
	}
}

// Run deletes every object older than the retention window. Implements
// scheduler.Job.
func (c *Cleaner) Run(ctx context.Context) {
	if c.maxAge <= 0 {
		return
	}
	cutoff := time.Now().Add(-c.maxAge)

	removed, failed := 0, 0
	for _, prefix := range c.prefixes {
		objs, err := c.blobs.List(prefix)
		if err != nil {
			logger.Warn("clean: listing failed", zap.String("prefix", prefix), zap.Error(err))
			continue
		}
		for _, obj := range objs {
			if ctx.Err() != nil {
				return
			}
			if obj.ModTime.After(cutoff) {
				continue
			}
			if err := c.blobs.Delete(obj.Key); err != nil {
				failed++
				logger.Warn("clean: delete failed", zap.String("key", obj.Key), zap.Error(err))
				continue
			}
			removed++
		}
	}
	if removed > 0 || failed > 0 {
		logger.Info("clean: retention sweep finished",
			zap.Int("removed", removed), zap.Int("failed", failed))
	}
}
