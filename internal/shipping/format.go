package shipping

import (
	"fmt"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
)

// FormatManifest renders the shipment notice
func FormatManifest(m *domain.Manifest) []string {
	lines := make([]string, 0, len(m.Groups)+3)
	lines = append(lines, "", "** Shipment notice **")
	for _, g := range m.Groups {
		lines = append(lines, report.Row(fmt.Sprintf("%dx %s", g.Count, g.Name), g.Weight.String()+"g"))
	}
	lines = append(lines, fmt.Sprintf("Total package weight %skg", m.TotalKilograms().StringFixed(1)))
	return lines
}
