package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// sweepPrefix restricts the sweep to asset objects; nothing else in the
// bucket is ours to delete.
const sweepPrefix = "tenants/"

// assetIndex is the slice of the asset repository the sweeper needs.
type assetIndex interface {
	KeyExists(ctx context.Context, key string) (bool, error)
}

// objectStore is the slice of the object storage client the sweeper needs.
type objectStore interface {
	ListKeys(ctx context.Context, bucketName, prefix string) ([]string, error)
	RemoveObject(ctx context.Context, bucketName, objectName string) error
}

// AssetSweeper removes bucket objects whose metadata row is gone. Asset
// deletion removes the object best-effort only, so the sweeper closes the gap.
type AssetSweeper struct {
	assetRepo assetIndex
	storage   objectStore
	bucket    string
}

func NewAssetSweeper(assetRepo assetIndex, storage objectStore, bucket string) *AssetSweeper {
	return &AssetSweeper{assetRepo: assetRepo, storage: storage, bucket: bucket}
}

// Run performs one sweep pass.
func (s *AssetSweeper) Run(ctx context.Context) error {
	keys, err := s.storage.ListKeys(ctx, s.bucket, sweepPrefix)
	if err != nil {
		return err
	}

	removed := 0
	for _, key := range keys {
		exists, err := s.assetRepo.KeyExists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.storage.RemoveObject(ctx, s.bucket, key); err != nil {
			log.Printf("asset sweeper: remove %s failed: %v", key, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("asset sweeper: removed %d orphaned objects", removed)
	}
	return nil
}

// StartScheduler runs the sweeper hourly until the scheduler is shut down.
func StartScheduler(sweeper *AssetSweeper) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if err := sweeper.Run(context.Background()); err != nil {
				log.Printf("asset sweeper run failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}
