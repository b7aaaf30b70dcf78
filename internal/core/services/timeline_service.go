package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/findash/finance_dashboard_app/internal/core/metrics"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
)

// timelineService builds the chart payload: one processed series per item
// plus goal target dates and milestones as markers. The assembled response
// is cached and dropped whenever any item or the whole dashboard changes,
// so repeated renders between mutations cost one lock acquisition.
type timelineService struct {
	BaseService
	items      portssvc.ItemReaderSvc
	goals      portsrepo.GoalReader
	milestones portsrepo.MilestoneReader

	mu     sync.Mutex
	cached *dto.TimelineResponse
}

// NewTimelineService creates the timeline service and subscribes it to the
// mutation topics that invalidate its cache.
func NewTimelineService(items portssvc.ItemReaderSvc, goals portsrepo.GoalReader, milestones portsrepo.MilestoneReader, bus *events.Bus) portssvc.TimelineSvcFacade {
	s := &timelineService{items: items, goals: goals, milestones: milestones}
	if bus != nil {
		invalidate := func(events.Event) { s.Invalidate() }
		bus.Subscribe(events.TopicItemChanged, invalidate)
		bus.Subscribe(events.TopicItemDeleted, invalidate)
		bus.Subscribe(events.TopicDashboardReplaced, invalidate)
	}
	return s
}

var _ portssvc.TimelineSvcFacade = (*timelineService)(nil)

// Invalidate drops the cached response. The next GetTimeline rebuilds it.
func (s *timelineService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *timelineService) GetTimeline(ctx context.Context) (*dto.TimelineResponse, error) {
	s.mu.Lock()
	if s.cached != nil {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	resp, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = resp
	s.mu.Unlock()
	return resp, nil
}

func (s *timelineService) build(ctx context.Context) (*dto.TimelineResponse, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items for timeline: %w", err)
	}

	series := make([]dto.ItemSeries, 0, len(items))
	for _, item := range items {
		points := metrics.Series(item)
		itemSeries := dto.ItemSeries{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Type:      item.Type,
			Color:     item.Color,
			IsVisible: item.IsVisible,
			Points:    make([]dto.TimelinePoint, 0, len(points)),
		}
		for _, p := range points {
			itemSeries.Points = append(itemSeries.Points, dto.TimelinePoint{Date: p.Date, Value: p.Value})
		}
		series = append(series, itemSeries)
	}

	markers, err := s.buildMarkers(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.TimelineResponse{Series: series, Markers: markers}, nil
}

func (s *timelineService) buildMarkers(ctx context.Context) ([]dto.TimelineMarker, error) {
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals for timeline: %w", err)
	}
	milestones, err := s.milestones.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing milestones for timeline: %w", err)
	}

	markers := make([]dto.TimelineMarker, 0, len(goals)+len(milestones))
	for _, goal := range goals {
		if goal.TargetDate == nil {
			continue
		}
		markers = append(markers, dto.TimelineMarker{
			Date:  *goal.TargetDate,
			Label: goal.Name,
			Kind:  "goal",
		})
	}
	for _, milestone := range milestones {
		markers = append(markers, dto.TimelineMarker{
			Date:  milestone.Date,
			Label: milestone.Description,
			Kind:  "milestone",
		})
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Date.Before(markers[j].Date)
	})
	return markers, nil
}
