package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/configs"
)

const purgeBatchSize = 1000

// BlacklistPurger dipenuhi repository.GormStore & MemoryStore.
type BlacklistPurger interface {
	PurgeBlacklist(ctx context.Context, before time.Time, limit int) (int64, error)
}

type CleanupConfig struct {
	Schedule      string
	RetentionDays int
}

func CleanupConfigFromEnv() CleanupConfig {
	return CleanupConfig{
		Schedule:      configs.GetEnv("BLACKLIST_CLEANUP_CRON", "0 3 * * *"),
		RetentionDays: configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7),
	}
}

// StartBlacklistCleanup mendaftarkan job cron dan langsung menjalankannya.
// Caller wajib memanggil Stop() saat shutdown.
func StartBlacklistCleanup(store BlacklistPurger, cfg CleanupConfig) (*cron.Cron, error) {
	cronLog := cron.PrintfLogger(zap.NewStdLog(zap.L().Named("cron")))
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.SkipIfStillRunning(cronLog)))

	if _, err := c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := PurgeExpired(ctx, store, cfg.RetentionDays, time.Now().UTC()); err != nil {
			zap.L().Error("[CLEANUP] purge blacklist gagal", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	zap.S().Infof("[CLEANUP] started schedule=%q retention=%dd", cfg.Schedule, cfg.RetentionDays)
	c.Start()
	return c, nil
}

// PurgeExpired menghapus batch demi batch sampai tidak ada lagi baris yang lewat retensi.
func PurgeExpired(ctx context.Context, store BlacklistPurger, retentionDays int, now time.Time) (int64, error) {
	if retentionDays < 0 {
		retentionDays = 0
	}
	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)

	var total int64
	for {
		n, err := store.PurgeBlacklist(ctx, cutoff, purgeBatchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n < purgeBatchSize {
			break
		}
	}
	if total > 0 {
		zap.L().Info("[CLEANUP] token blacklist dibersihkan", zap.Int64("rows", total), zap.Time("cutoff", cutoff))
	}
	return total, nil
}
