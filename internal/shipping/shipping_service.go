package shipping

import (
	"context"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Publisher forwards a manifest to downstream fulfilment
type Publisher interface {
	Publish(ctx context.Context, manifest *domain.Manifest) error
}

// Service groups shippable units into a manifest and prints the shipment notice.
// It keeps no state between calls.
type Service struct {
	display   report.Display
	publisher Publisher
	logger    *zap.Logger
}

// NewService creates a shipping service. publisher may be nil.
func NewService(display report.Display, publisher Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		display:   display,
		publisher: publisher,
		logger:    logger,
	}
}

// Ship builds the manifest for units, writes the shipment notice and publishes it.
// A failed publish is logged and does not affect the returned manifest.
func (s *Service) Ship(ctx context.Context, units []domain.ShippableUnit) *domain.Manifest {
	manifest := BuildManifest(units)
	manifest.ID = uuid.NewString()

	for _, line := range FormatManifest(manifest) {
		s.display.WriteLine(line)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, manifest); err != nil {
			s.logger.Warn("manifest publish failed",
				zap.String("manifest_id", manifest.ID),
				zap.Error(err))
		}
	}

	return manifest
}

// BuildManifest groups units by name in first-seen order.
// The first unit of a name fixes the group weight; later units only raise the count.
// TotalWeight sums the weight of every unit.
func BuildManifest(units []domain.ShippableUnit) *domain.Manifest {
	manifest := &domain.Manifest{TotalWeight: decimal.Zero}
	index := make(map[string]int)

	for _, unit := range units {
		if i, ok := index[unit.Name]; ok {
			manifest.Groups[i].Count++
		} else {
			index[unit.Name] = len(manifest.Groups)
			manifest.Groups = append(manifest.Groups, domain.ManifestGroup{
				Name:   unit.Name,
				Count:  1,
				Weight: unit.Weight,
			})
		}
		manifest.TotalWeight = manifest.TotalWeight.Add(unit.Weight)
	}

	return manifest
}
