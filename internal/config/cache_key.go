package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ReportSummaryKey returns the cache key for the aggregated report summary
func (r *CacheKeyStruct) ReportSummaryKey() string {
	return "report:summary"
}

var CacheKey = NewCacheKeyStruct()
