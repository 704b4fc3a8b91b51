package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"diskmonitor/internal/metrics"
	"diskmonitor/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
)

const GB = 1024 * 1024 * 1024

var (
	// ErrPathNotFound is returned when the requested path does not exist
	ErrPathNotFound = errors.New("path does not exist")
	// ErrZeroCapacity is returned when the OS reports a volume with no blocks
	ErrZeroCapacity = errors.New("filesystem reports zero capacity")
)

// UsageFunc queries the OS for the capacity of the volume containing path
type UsageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// PartitionsFunc lists mounted partitions
type PartitionsFunc func(ctx context.Context, all bool) ([]disk.PartitionStat, error)

// StatFunc checks that a path exists
type StatFunc func(path string) (os.FileInfo, error)

// DiskService resolves filesystem paths to capacity snapshots.
// It holds no mutable state and is safe for concurrent use.
type DiskService struct {
	usage      UsageFunc
	partitions PartitionsFunc
	stat       StatFunc
}

// DiskOption customizes a DiskService
type DiskOption func(*DiskService)

// WithUsageFunc replaces the OS capacity query
func WithUsageFunc(fn UsageFunc) DiskOption {
	return func(s *DiskService) { s.usage = fn }
}

// WithPartitionsFunc replaces the partition listing
func WithPartitionsFunc(fn PartitionsFunc) DiskOption {
	return func(s *DiskService) { s.partitions = fn }
}

// WithStatFunc replaces the existence check
func WithStatFunc(fn StatFunc) DiskOption {
	return func(s *DiskService) { s.stat = fn }
}

// NewDiskService creates a DiskService backed by gopsutil
func NewDiskService(opts ...DiskOption) *DiskService {
	s := &DiskService{
		usage:      disk.UsageWithContext,
		partitions: disk.PartitionsWithContext,
		stat:       os.Stat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDiskUsage returns disk usage for a specific path.
// The error wraps ErrPathNotFound, ErrZeroCapacity or the OS failure.
func (s *DiskService) GetDiskUsage(ctx context.Context, path string) (*models.DiskInfo, error) {
	if _, err := s.stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrPathNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	usage, err := s.usage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("disk usage for %s: %w", path, err)
	}

	info, err := NewDiskInfo(path, usage.Total, usage.Used, usage.Free)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Resolve returns the capacity snapshot for path, or false when it cannot be
// determined. Every failure cause collapses to false and is only logged.
func (s *DiskService) Resolve(ctx context.Context, path string) (models.DiskInfo, bool) {
	info, err := s.GetDiskUsage(ctx, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Could not get disk information")
		metrics.IncDiskLookup(false)
		return models.DiskInfo{}, false
	}
	metrics.IncDiskLookup(true)
	return *info, true
}

// ResolveAll returns a snapshot for every mounted physical partition.
// Partitions that cannot be resolved are skipped.
func (s *DiskService) ResolveAll(ctx context.Context) []models.DiskInfo {
	statuses := []models.DiskInfo{}

	partitions, err := s.partitions(ctx, false)
	if err != nil {
		log.Warn().Err(err).Msg("Could not list disk partitions")
		return statuses
	}

	seen := make(map[string]bool, len(partitions))
	for _, partition := range partitions {
		if seen[partition.Mountpoint] {
			continue
		}
		seen[partition.Mountpoint] = true

		info, ok := s.Resolve(ctx, partition.Mountpoint)
		if !ok {
			continue
		}
		statuses = append(statuses, info)
	}

	return statuses
}

// NewDiskInfo converts raw byte counts into a DiskInfo
func NewDiskInfo(path string, total, used, free uint64) (models.DiskInfo, error) {
	if total == 0 {
		return models.DiskInfo{}, fmt.Errorf("%s: %w", path, ErrZeroCapacity)
	}

	return models.DiskInfo{
		Path:         path,
		TotalGB:      round2(float64(total) / GB),
		UsedGB:       round2(float64(used) / GB),
		FreeGB:       round2(float64(free) / GB),
		UsagePercent: round2(float64(used) / float64(total) * 100),
	}, nil
}

// round2 rounds the exact binary value to 2 decimals, ties to even
func round2(v float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return rounded
}
