package repositories

import "github.com/vsinha/faraid/pkg/domain/entities"

// HeirDirectory provides read access to the heir category reference data
type HeirDirectory interface {
	GetCategory(category entities.HeirCategory) (*entities.HeirCategoryInfo, error)
	GetAllCategories() ([]*entities.HeirCategoryInfo, error)
	LoadCategories(categories []*entities.HeirCategoryInfo) error
}
