package formatter

import (
	"fmt"
	"strings"

	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/contract"
)

// FormatProfile formats the user profile.
func FormatProfile(v contract.ProfileView) string {
	var b strings.Builder

	b.WriteString(Dim("Sex       ") + StyleFg.Render(v.Sex) + "\n")
	b.WriteString(Dim("Born      ") + StyleFg.Render(v.BirthDate) + "\n")
	b.WriteString(Dim("Height    ") + StyleFg.Render(fmt.Sprintf("%.0f cm", v.HeightCm)) + "\n")
	b.WriteString(Dim("Activity  ") + StyleFg.Render(v.ActivityLevel) + "\n")
	b.WriteString(Dim("Formula   ") + StylePurple.Render(v.BMRFormula) + "\n")

	return RenderBox("Profile", b.String())
}

// FormatCatalog formats the training-type catalog as a table.
func FormatCatalog(entries []catalog.Entry) string {
	headers := []string{"TYPE", "NAME", "CATEGORY", "MET", "LOAD"}
	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		rows = append(rows, []string{
			Bold(e.Type),
			StyleFg.Render(e.DisplayName),
			StylePurple.Render(string(e.Category)),
			fmt.Sprintf("%.1f", e.METValue),
			fmt.Sprintf("%.1f", e.LoadScore),
		})
	}

	return RenderTable(headers, rows)
}
