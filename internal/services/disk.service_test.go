package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"bytes"
	"testing"

	"diskmonitor/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedUsage(total, used, free uint64) UsageFunc {
	return func(ctx context.Context, path string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Path: path, Total: total, Used: used, Free: free}, nil
	}
}

func existing(path string) (os.FileInfo, error) { return nil, nil }

func TestNewDiskInfo_RootScenario(t *testing.T) {
	info, err := NewDiskInfo("/", 100*GB, 40*GB, 60*GB)
	require.NoError(t, err)

	assert.Equal(t, "/", info.Path)
	assert.Equal(t, 100.0, info.TotalGB)
	assert.Equal(t, 40.0, info.UsedGB)
	assert.Equal(t, 60.0, info.FreeGB)
	assert.Equal(t, 40.0, info.UsagePercent)
}

func TestNewDiskInfo_Rounding(t *testing.T) {
	tests := []struct {
		name        string
		total       uint64
		used        uint64
		free        uint64
		wantTotal   float64
		wantUsed    float64
		wantFree    float64
		wantPercent float64
	}{
		{"thirds", 3 * GB, 1 * GB, 2 * GB, 3, 1, 2, 33.33},
		{"two thirds", 3 * GB, 2 * GB, 1 * GB, 3, 2, 1, 66.67},
		{"fractional gib", GB + GB/3, GB / 3, GB, 1.33, 0.33, 1, 25},
		{"empty volume", 10 * GB, 0, 10 * GB, 10, 0, 10, 0},
		{"full volume", 10 * GB, 10 * GB, 0, 10, 10, 0, 100},
		{"percent tie rounds to even", 800, 1, 799, 0, 0, 0, 0.12},
		{"eighth gib ties", GB, GB / 8, GB - GB/8, 1, 0.12, 0.88, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewDiskInfo("/data", tt.total, tt.used, tt.free)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, info.TotalGB)
			assert.Equal(t, tt.wantUsed, info.UsedGB)
			assert.Equal(t, tt.wantFree, info.FreeGB)
			assert.Equal(t, tt.wantPercent, info.UsagePercent)
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.12},
		{0.875, 0.88},
		{1.015, 1.01},
		{2.675, 2.67},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{40, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round2(tt.in), "round2(%v)", tt.in)
	}
}

func TestNewDiskInfo_PercentUsesTotal(t *testing.T) {
	// Reserved blocks: used + free < total, percent is still used/total
	info, err := NewDiskInfo("/", 100*GB, 40*GB, 55*GB)
	require.NoError(t, err)
	assert.Equal(t, 40.0, info.UsagePercent)
}

func TestNewDiskInfo_ZeroCapacity(t *testing.T) {
	_, err := NewDiskInfo("/proc", 0, 0, 0)
	assert.ErrorIs(t, err, ErrZeroCapacity)
}

func TestGetDiskUsage_MissingPath(t *testing.T) {
	svc := NewDiskService(WithUsageFunc(fixedUsage(GB, 0, GB)))
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	info, err := svc.GetDiskUsage(context.Background(), missing)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestGetDiskUsage_UsageError(t *testing.T) {
	boom := errors.New("permission denied")
	svc := NewDiskService(
		WithStatFunc(existing),
		WithUsageFunc(func(ctx context.Context, path string) (*disk.UsageStat, error) {
			return nil, boom
		}),
	)

	_, err := svc.GetDiskUsage(context.Background(), "/secret")
	assert.ErrorIs(t, err, boom)
}

func TestGetDiskUsage_StatError(t *testing.T) {
	svc := NewDiskService(
		WithStatFunc(func(string) (os.FileInfo, error) { return nil, os.ErrPermission }),
		WithUsageFunc(fixedUsage(GB, 0, GB)),
	)

	_, err := svc.GetDiskUsage(context.Background(), "/root/private")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.NotErrorIs(t, err, ErrPathNotFound)
}

func TestResolve_Found(t *testing.T) {
	svc := NewDiskService(WithStatFunc(existing), WithUsageFunc(fixedUsage(100*GB, 40*GB, 60*GB)))
	before := testutil.ToFloat64(metrics.DiskLookups().WithLabelValues("found"))

	info, ok := svc.Resolve(context.Background(), "/")
	require.True(t, ok)
	assert.Equal(t, "/", info.Path)
	assert.Equal(t, 40.0, info.UsagePercent)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DiskLookups().WithLabelValues("found")))
}

func TestResolve_CollapsesFailures(t *testing.T) {
	tests := []struct {
		name string
		svc  *DiskService
		path string
	}{
		{
			name: "missing path",
			svc:  NewDiskService(WithUsageFunc(fixedUsage(GB, 0, GB))),
			path: filepath.Join(t.TempDir(), "nope"),
		},
		{
			name: "usage failure",
			svc: NewDiskService(WithStatFunc(existing), WithUsageFunc(func(ctx context.Context, path string) (*disk.UsageStat, error) {
				return nil, errors.New("input/output error")
			})),
			path: "/mnt/broken",
		},
		{
			name: "zero capacity",
			svc:  NewDiskService(WithStatFunc(existing), WithUsageFunc(fixedUsage(0, 0, 0))),
			path: "/proc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.DiskLookups().WithLabelValues("absent"))

			info, ok := tt.svc.Resolve(context.Background(), tt.path)
			assert.False(t, ok)
			assert.Empty(t, info.Path)
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.DiskLookups().WithLabelValues("absent")))
		})
	}
}

func TestResolve_LogsFailureAtDebug(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	svc := NewDiskService(WithUsageFunc(fixedUsage(GB, 0, GB)))
	missing := filepath.Join(t.TempDir(), "gone")

	_, ok := svc.Resolve(context.Background(), missing)
	require.False(t, ok)
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.NotContains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), missing)
}

func TestResolve_RealFilesystem(t *testing.T) {
	svc := NewDiskService()
	dir := t.TempDir()

	info, ok := svc.Resolve(context.Background(), dir)
	require.True(t, ok)
	assert.Equal(t, dir, info.Path)
	assert.Greater(t, info.TotalGB, 0.0)
	assert.GreaterOrEqual(t, info.UsagePercent, 0.0)
	assert.LessOrEqual(t, info.UsagePercent, 100.0)
	assert.LessOrEqual(t, info.UsedGB+info.FreeGB, info.TotalGB+0.02)
}

func TestResolveAll(t *testing.T) {
	svc := NewDiskService(
		WithStatFunc(existing),
		WithPartitionsFunc(func(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
			assert.False(t, all)
			return []disk.PartitionStat{
				{Mountpoint: "/"},
				{Mountpoint: "/home"},
				{Mountpoint: "/"},
				{Mountpoint: "/empty"},
			}, nil
		}),
		WithUsageFunc(func(ctx context.Context, path string) (*disk.UsageStat, error) {
			if path == "/empty" {
				return &disk.UsageStat{Path: path}, nil
			}
			return &disk.UsageStat{Path: path, Total: 4 * GB, Used: GB, Free: 3 * GB}, nil
		}),
	)

	disks := svc.ResolveAll(context.Background())
	require.Len(t, disks, 2)
	assert.Equal(t, "/", disks[0].Path)
	assert.Equal(t, "/home", disks[1].Path)
	assert.Equal(t, 25.0, disks[1].UsagePercent)
}

func TestResolveAll_PartitionError(t *testing.T) {
	svc := NewDiskService(WithPartitionsFunc(func(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
		return nil, errors.New("no /proc/mounts")
	}))

	disks := svc.ResolveAll(context.Background())
	assert.NotNil(t, disks)
	assert.Empty(t, disks)
}
