package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"beanvault/internal/port"
)

// BuildPriceListPrompt builds the extraction prompt for a raw price list text.
// pageCount is the number of pages in the source document; 0 means unknown.
func BuildPriceListPrompt(text string, pageCount int) string {
	var b strings.Builder
	b.WriteString("You are a data extraction assistant for a coffee bean trading company.\n")
	b.WriteString("Extract every coffee bean entry from the price list text below into JSON.\n\n")
	b.WriteString("Return ONLY a JSON array of pages, one object per source page:\n")
	b.WriteString(`[{"page": 1, "coffee_beans": [{"code": "", "name": "", "country": "", "flavor_profile": "", "price_per_kg": null, "price_per_pkg": null, "origin": "", "plot": "", "estate": "", "grade": "", "humidity": "", "altitude": "", "density": "", "processing_method": "", "harvest_season": "", "variety": "", "sold_out": false}]}]`)
	b.WriteString("\n\nRules:\n")
	if pageCount > 0 {
		fmt.Fprintf(&b, "- The document has %d pages. Use the real page number for each page object and never invent pages beyond %d.\n", pageCount, pageCount)
	} else {
		b.WriteString("- Use the real page number for each page object when the text marks page boundaries.\n")
	}
	b.WriteString("- Keep every bean on the page where it appears; do not merge or reorder pages.\n")
	b.WriteString("- price_per_kg is a number in yuan per kilogram. \"¥84/KG\" means 84. \"¥120/公斤\" means 120. Use null when no per-kg price is given.\n")
	b.WriteString("- price_per_pkg is the per-package price when the list quotes by bag or box; keep the value as printed, null when absent.\n")
	b.WriteString("- sold_out is true when the entry is marked 售罄, 售馨, sold out, or similar; otherwise false.\n")
	b.WriteString("- Use \"\" for text fields with no value. Never write the string \"None\".\n")
	b.WriteString("- Do not add commentary, markdown fences, or fields outside the schema.\n")
	b.WriteString("\nPrice list text:\n")
	b.WriteString(text)
	return b.String()
}

// BuildFlavorPrompt builds the categorization prompt mapping detailed flavor
// profiles onto a fixed set of categories.
func BuildFlavorPrompt(profiles []port.FlavorProfile, categories []port.FlavorCategory) string {
	var b strings.Builder
	b.WriteString("You are a coffee flavor expert. Assign each bean's flavor profile to exactly one category.\n\n")
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
	}
	fmt.Fprintf(&b, "\nIf a profile fits none of them, use %q.\n\n", UncategorizedFlavor)
	b.WriteString("Return ONLY a JSON array:\n")
	b.WriteString(`[{"code": "", "flavor_profile": "", "flavor_category": ""}]`)
	b.WriteString("\n\nBeans:\n")
	payload, _ := json.Marshal(profiles)
	b.Write(payload)
	return b.String()
}

// BuildQueryPrompt builds the SQL generation prompt for the query agent.
func BuildQueryPrompt(question string) string {
	var b strings.Builder
	b.WriteString("You translate questions about a coffee bean database into a single PostgreSQL SELECT statement.\n\n")
	b.WriteString("Table coffee_beans columns:\n")
	b.WriteString("  type text              -- 'common' or 'premium'\n")
	b.WriteString("  code text\n")
	b.WriteString("  name text\n")
	b.WriteString("  country text\n")
	b.WriteString("  flavor_profile text\n")
	b.WriteString("  flavor_category text\n")
	b.WriteString("  price_per_kg numeric   -- yuan per kilogram, nullable\n")
	b.WriteString("  price_per_pkg numeric  -- yuan per package, nullable\n")
	b.WriteString("  sold_out boolean\n")
	b.WriteString("  origin text\n")
	b.WriteString("  plot text\n")
	b.WriteString("  estate text\n")
	b.WriteString("  grade text\n")
	b.WriteString("  humidity text\n")
	b.WriteString("  altitude text\n")
	b.WriteString("  density text\n")
	b.WriteString("  processing_method text\n")
	b.WriteString("  harvest_season text\n")
	b.WriteString("  variety text\n")
	b.WriteString("  provider text          -- price list source\n")
	b.WriteString("  data_year int\n")
	b.WriteString("  data_month int\n")
	b.WriteString("\nRules:\n")
	b.WriteString("- Return ONLY a JSON object: {\"sql\": \"SELECT ...\"}\n")
	b.WriteString("- SELECT statements only; never INSERT, UPDATE, DELETE, or DDL.\n")
	b.WriteString("- Match Chinese and English names with ILIKE patterns.\n")
	b.WriteString("- When the question does not name a period, prefer the latest data_year and data_month.\n")
	b.WriteString("\nQuestion:\n")
	b.WriteString(question)
	return b.String()
}
