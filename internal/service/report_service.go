package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/config"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/report"
	"golang.org/x/sync/errgroup"
)

// ReportService builds the aggregated reports and keeps the latest summary
// cached.
type ReportService struct {
	src   report.Source
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(src report.Source, cache Cache, ttl time.Duration, log zerolog.Logger) *ReportService {
	return &ReportService{
		src:   src,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "report_service").Logger(),
	}
}

// Summary returns the cached summary, computing it on a miss. Cache errors
// are logged and never fail the request.
func (s *ReportService) Summary(ctx context.Context) (*report.Summary, error) {
	key := config.CacheKey.ReportSummaryKey()

	b, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var sum report.Summary
		if err := json.Unmarshal(b, &sum); err == nil {
			return &sum, nil
		}
		s.log.Warn().Msg("Discarding undecodable cached summary")
	case !errors.Is(err, ErrCacheMiss):
		s.log.Warn().Err(err).Msg("Summary cache read failed")
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the summary from the record store and caches it.
func (s *ReportService) Refresh(ctx context.Context) (*report.Summary, error) {
	var (
		members    []model.Member
		activities []model.Activity
		records    []model.AttendanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.src.ListMembers(gctx, model.MemberFilter{})
		return err
	})
	g.Go(func() (err error) {
		activities, err = s.src.ListActivities(gctx, model.ActivitySortDateDesc)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.src.ListAllAttendance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load report data: %w", err)
	}

	sum := report.Aggregate(members, activities, records)

	if b, err := json.Marshal(sum); err != nil {
		s.log.Warn().Err(err).Msg("Summary encode failed")
	} else if err := s.cache.Set(ctx, config.CacheKey.ReportSummaryKey(), b, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("Summary cache write failed")
	}
	return &sum, nil
}

// Invalidate drops the cached summary.
func (s *ReportService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, config.CacheKey.ReportSummaryKey())
}

// Export writes the summary to w as an XLSX workbook.
func (s *ReportService) Export(ctx context.Context, w io.Writer) error {
	sum, err := s.Summary(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteWorkbook(w, *sum); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
