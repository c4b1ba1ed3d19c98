package parser

import (
	"beanvault/internal/extract"
	"beanvault/internal/port"
)

// BeanSchema declares the price list item fields and their coercion rules.
// price_per_pkg is deliberately passthrough while price_per_kg is coerced;
// the storage boundary converts it later.
var BeanSchema = extract.Schema{
	Fields: []extract.Field{
		{Name: "code", Kind: extract.FieldString},
		{Name: "name", Kind: extract.FieldString},
		{Name: "country", Kind: extract.FieldString},
		{Name: "flavor_profile", Kind: extract.FieldString},
		{Name: "price_per_kg", Kind: extract.FieldNullableFloat},
		{Name: "price_per_pkg", Kind: extract.FieldPassthrough},
		{Name: "origin", Kind: extract.FieldString},
		{Name: "plot", Kind: extract.FieldString},
		{Name: "estate", Kind: extract.FieldString},
		{Name: "grade", Kind: extract.FieldString},
		{Name: "humidity", Kind: extract.FieldString},
		{Name: "altitude", Kind: extract.FieldString},
		{Name: "density", Kind: extract.FieldString},
		{Name: "processing_method", Kind: extract.FieldString},
		{Name: "harvest_season", Kind: extract.FieldString},
		{Name: "variety", Kind: extract.FieldString},
		{Name: "sold_out", Kind: extract.FieldBool},
	},
	KeyField: "name",
	ItemsKey: "coffee_beans",
}

// FlavorSchema declares the flat categorization result fields.
var FlavorSchema = extract.Schema{
	Fields: []extract.Field{
		{Name: "code", Kind: extract.FieldString},
		{Name: "flavor_profile", Kind: extract.FieldString},
		{Name: "flavor_category", Kind: extract.FieldString},
	},
	KeyField: "code",
}

// UncategorizedFlavor is the fallback category for profiles the model could
// not map.
const UncategorizedFlavor = "未分类"

// DefaultFlavorCategories are the eight simplified flavor categories.
var DefaultFlavorCategories = []port.FlavorCategory{
	{Name: "明亮果酸型(Bright & Fruity Acidity)", Description: "citrus, berries, lively acidity"},
	{Name: "花香茶感型(Floral & Tea-like)", Description: "jasmine, bergamot, delicate tea body"},
	{Name: "果汁感热带水果型(Juicy & Tropical Fruit)", Description: "mango, passion fruit, juicy sweetness"},
	{Name: "均衡圆润型(Balanced & Clean)", Description: "mild acidity, clean cup, rounded body"},
	{Name: "巧克力坚果调型(Chocolate & Nutty)", Description: "cocoa, hazelnut, toasted notes"},
	{Name: "焦糖甜感型(Caramel Sweetness)", Description: "caramel, brown sugar, honey sweetness"},
	{Name: "酒香发酵型(Winey & Fermented)", Description: "winey, boozy, fermented fruit"},
	{Name: "烟熏木质型(Earthy & Spicy)", Description: "earthy, cedar, spice, smoke"},
}
