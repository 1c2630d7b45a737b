package summary

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth    = 20
	maxQuantity = 999
)

type RenderOptions struct {
	// Catalog names slots; without it slots are shown by number only.
	Catalog ports.Catalog
	Title   string
}

func renderView(summary domain.SaveSummary, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "PLZA Save"
	}

	lines := []string{
		s.title.Render(title),
		s.section.Render(renderProfile(summary.Profile, s)),
		s.section.Render(renderInventory(summary.Inventory, opts.Catalog, s)),
		s.section.Render(renderCollection(summary.Collection, opts.Catalog, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(p domain.ProfileSummary, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.header.Render("Trainer"),
		field("name", p.Name, s),
		field("tid", fmt.Sprintf("%d", p.TrainerID), s),
		field("gender", p.Gender.String(), s),
		field("language", p.Language.String(), s),
	)
}

func field(label, value string, s styles) string {
	return s.label.Render(fmt.Sprintf("%-9s", label+":")) + " " + s.value.Render(value)
}

func renderInventory(entries map[int]domain.InventorySummaryEntry, catalog ports.Catalog, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("Bag (%d items)", len(entries)))}
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No editable items."))...)
	}

	for _, slot := range slices.Sorted(maps.Keys(entries)) {
		entry := entries[slot]
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.slot.Render(fmt.Sprintf("%4d", slot)),
			" ",
			s.value.Render(fmt.Sprintf("%-20s", itemName(catalog, slot))),
			" ",
			s.category.Render(fmt.Sprintf("%-12s", entry.Category)),
			" ",
			renderQuantityBar(entry.Quantity, barWidth, s),
			" ",
			s.value.Render(fmt.Sprintf("x%d", entry.Quantity)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCollection(entries map[int]domain.CollectionSummaryEntry, catalog ports.Catalog, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("Collection (%d species)", len(entries)))}
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No species exposed."))...)
	}

	for _, slot := range slices.Sorted(maps.Keys(entries)) {
		entry := entries[slot]
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.slot.Render(fmt.Sprintf("%4d", slot)),
			" ",
			s.value.Render(fmt.Sprintf("%-20s", speciesName(catalog, slot))),
			" ",
			flag("caught", entry.CaptureFlag, s),
			" ",
			flag("battled", entry.BattleFlag, s),
			" ",
			flag("shiny", entry.ShinyFlag, s),
			" ",
			flag("variant", entry.VariantFlag, s),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func flag(name string, v uint8, s styles) string {
	if v != 0 {
		return s.flagOn.Render(name)
	}
	return s.flagOff.Render(strings.Repeat("-", len(name)))
}

func itemName(catalog ports.Catalog, slot int) string {
	if catalog != nil {
		if item, ok := catalog.Item(slot); ok {
			return item.Name
		}
	}
	return fmt.Sprintf("item #%d", slot)
}

func speciesName(catalog ports.Catalog, slot int) string {
	if catalog != nil {
		if species, ok := catalog.Species(slot); ok {
			return species.Name
		}
	}
	return fmt.Sprintf("species #%d", slot)
}

func renderQuantityBar(quantity uint32, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(min(quantity, maxQuantity)) / maxQuantity))
	if quantity > 0 && filled == 0 {
		filled = 1
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
