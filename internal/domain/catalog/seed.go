package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/i18n"
)

// SampleProducts is the starter menu inserted into an empty catalog.
func SampleProducts() []*Product {
	return []*Product{
		{
			Names: map[i18n.Lang]string{
				i18n.French:  "Pizza Margherita",
				i18n.English: "Margherita Pizza",
				i18n.Arabic:  "بيتزا مارغريتا",
			},
			Descriptions: map[i18n.Lang]string{
				i18n.French:  "Délicieuse pizza classique avec tomates, fromage et basilic.",
				i18n.English: "Delicious classic pizza with tomatoes, cheese and basil.",
				i18n.Arabic:  "بيتزا كلاسيكية لذيذة مع الطماطم والجبن والريحان.",
			},
			Price:         decimal.RequireFromString("15.00"),
			ImageFilename: "pizza.png",
		},
		{
			Names: map[i18n.Lang]string{
				i18n.French:  "Sandwich au poulet",
				i18n.English: "Chicken Sandwich",
				i18n.Arabic:  "ساندويتش دجاج",
			},
			Descriptions: map[i18n.Lang]string{
				i18n.French:  "Sandwich savoureux avec poulet grillé et légumes frais.",
				i18n.English: "Tasty sandwich with grilled chicken and fresh vegetables.",
				i18n.Arabic:  "ساندويتش لذيذ مع الدجاج المشوي والخضروات الطازجة.",
			},
			Price:         decimal.RequireFromString("8.50"),
			ImageFilename: "sandwich.png",
		},
		{
			Names: map[i18n.Lang]string{
				i18n.French:  "Salade César",
				i18n.English: "Caesar Salad",
				i18n.Arabic:  "سلطة سيزر",
			},
			Descriptions: map[i18n.Lang]string{
				i18n.French:  "Salade verte croquante avec sauce César et croûtons.",
				i18n.English: "Crunchy green salad with Caesar dressing and croutons.",
				i18n.Arabic:  "سلطة خضراء مقرمشة مع صلصة سيزر وقطع خبز محمص.",
			},
			Price:         decimal.RequireFromString("7.00"),
			ImageFilename: "salad.png",
		},
		{
			Names: map[i18n.Lang]string{
				i18n.French:  "Tarte au chocolat",
				i18n.English: "Chocolate Tart",
				i18n.Arabic:  "فطيرة الشوكولاتة",
			},
			Descriptions: map[i18n.Lang]string{
				i18n.French:  "Tarte gourmande au chocolat noir et crème.",
				i18n.English: "Indulgent tart with dark chocolate and cream.",
				i18n.Arabic:  "فطيرة شهية بالشوكولاتة الداكنة والكريمة.",
			},
			Price:         decimal.RequireFromString("5.50"),
			ImageFilename: "dessert.png",
		},
	}
}
