// README: Draft service; owns schema detection and normalization over the session repository.
package draft

import (
	"context"

	"wasel/internal/session"
)

type Service struct {
	repo *session.Repo
}

func NewService(repo *session.Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) SaveSkeleton(ctx context.Context, sid string, sk *Skeleton) error {
	return s.repo.SaveSkeleton(ctx, sid, sk)
}

func (s *Service) SaveSegments(ctx context.Context, sid string, segs []RouteSegment) error {
	return s.repo.SaveSegments(ctx, sid, segs)
}

// IsNewFormat reports whether the segmented schema is authoritative for this
// session: the segments key exists and parses to a non-empty array.
func (s *Service) IsNewFormat(ctx context.Context, sid string) bool {
	return len(s.RouteSegments(ctx, sid)) > 0
}

// RouteSegments returns the stored segment list, or nil when the key is
// absent or unparseable.
func (s *Service) RouteSegments(ctx context.Context, sid string) []RouteSegment {
	var segs []RouteSegment
	ok, err := s.repo.LoadSegments(ctx, sid, &segs)
	if err != nil || !ok {
		return nil
	}
	return segs
}

// Load normalizes whichever schema is present into a single OrderData.
//
// Segmented: the skeleton must also exist (segments alone read as no draft);
// the first segment's package details are flattened into the legacy fields
// while the full list is preserved on Segments.
// Legacy: the skeleton blob is the order.
// Both absent, or malformed JSON at any key: (nil, nil). Only infrastructure
// failures surface as errors.
func (s *Service) Load(ctx context.Context, sid string) (*OrderData, error) {
	segs := s.RouteSegments(ctx, sid)

	var sk Skeleton
	ok, err := s.repo.LoadSkeleton(ctx, sid, &sk)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	o := &OrderData{Skeleton: sk}
	if len(segs) > 0 {
		o.Segments = segs
		flattenFirstSegment(o)
	}
	return o, nil
}

// flattenFirstSegment mirrors segment 0 into the flat package fields so
// legacy display paths keep working against segmented drafts.
func flattenFirstSegment(o *OrderData) {
	p := o.Segments[0].Package
	o.PackageDescription = p.Description
	o.PackageWeight = p.Weight
	o.PackageDimensions = p.Dimensions
	o.SpecialInstructions = p.SpecialInstructions
	o.PackageImages = p.Images
}
