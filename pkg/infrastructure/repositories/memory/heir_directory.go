package memory

import (
	"fmt"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/repositories"
)

// classicalNames maps every category to its classical term
var classicalNames = map[entities.HeirCategory]string{
	entities.Son:                 "Ibn",
	entities.Father:              "Ab",
	entities.Husband:             "Zawj",
	entities.Wife:                "Zawjah",
	entities.SonsSon:             "Ibn al-Ibn",
	entities.Grandfather:         "Jadd",
	entities.FullBrother:         "Akh Shaqiq",
	entities.PaternalBrother:     "Akh li-Ab",
	entities.MaternalBrother:     "Akh li-Umm",
	entities.FullBrothersSon:     "Ibn al-Akh al-Shaqiq",
	entities.PaternalBrothersSon: "Ibn al-Akh li-Ab",
	entities.FullUncle:           "Amm Shaqiq",
	entities.PaternalUncle:       "Amm li-Ab",
	entities.FullUnclesSon:       "Ibn al-Amm al-Shaqiq",
	entities.PaternalUnclesSon:   "Ibn al-Amm li-Ab",
	entities.Daughter:            "Bint",
	entities.SonsDaughter:        "Bint al-Ibn",
	entities.Mother:              "Umm",
	entities.MaternalGrandmother: "Jaddah min al-Umm",
	entities.PaternalGrandmother: "Jaddah min al-Ab",
	entities.FullSister:          "Ukht Shaqiqah",
	entities.PaternalSister:      "Ukht li-Ab",
	entities.MaternalSister:      "Ukht li-Umm",
	entities.Emancipator:         "Mu'tiq",
	entities.Emancipatrix:        "Mu'tiqah",
}

// HeirDirectory provides in-memory heir category storage
type HeirDirectory struct {
	categories    []entities.HeirCategoryInfo
	categoriesMap map[entities.HeirCategory]int
}

// NewHeirDirectory creates an empty in-memory heir directory
func NewHeirDirectory(expectedCategories int) *HeirDirectory {
	return &HeirDirectory{
		categories:    make([]entities.HeirCategoryInfo, 0, expectedCategories),
		categoriesMap: make(map[entities.HeirCategory]int, expectedCategories),
	}
}

// NewStandardHeirDirectory creates a directory holding the 25 standard categories
func NewStandardHeirDirectory() *HeirDirectory {
	d := NewHeirDirectory(entities.CategoryCount)
	for _, c := range entities.AllCategories() {
		info, err := entities.NewHeirCategoryInfo(c, classicalNames[c])
		if err != nil {
			panic(err) // AllCategories only yields valid categories
		}
		d.AddCategory(*info)
	}
	return d
}

// Verify interface compliance
var _ repositories.HeirDirectory = (*HeirDirectory)(nil)

// LoadCategories loads categories into the directory, rejecting duplicates
func (d *HeirDirectory) LoadCategories(categories []*entities.HeirCategoryInfo) error {
	for _, c := range categories {
		if _, exists := d.categoriesMap[c.Category]; exists {
			return fmt.Errorf("duplicate heir category: %d", int(c.Category))
		}
		d.AddCategory(*c)
	}
	return nil
}

// AddCategory adds a category to the directory
func (d *HeirDirectory) AddCategory(info entities.HeirCategoryInfo) {
	d.categoriesMap[info.Category] = len(d.categories)
	d.categories = append(d.categories, info)
}

// GetCategory returns the directory record for a category
func (d *HeirDirectory) GetCategory(category entities.HeirCategory) (*entities.HeirCategoryInfo, error) {
	index, exists := d.categoriesMap[category]
	if !exists {
		return nil, fmt.Errorf("heir category not found: %d", int(category))
	}
	return &d.categories[index], nil
}

// GetAllCategories returns all categories in load order
func (d *HeirDirectory) GetAllCategories() ([]*entities.HeirCategoryInfo, error) {
	categories := make([]*entities.HeirCategoryInfo, 0, len(d.categories))
	for i := range d.categories {
		categories = append(categories, &d.categories[i])
	}
	return categories, nil
}
