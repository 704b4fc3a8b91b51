package models

// DiskInfo represents capacity and usage of the volume containing Path.
// All *GB fields are GiB rounded to 2 decimals.
type DiskInfo struct {
	Path         string  `json:"path"`
	TotalGB      float64 `json:"total_gb"`
	UsedGB       float64 `json:"used_gb"`
	FreeGB       float64 `json:"free_gb"`
	UsagePercent float64 `json:"usage_percent"`
}
