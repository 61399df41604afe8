package entities

// HeirCategory identifies one of the closed set of heir categories.
// The numeric values are the stable category ids used in requests.
type HeirCategory int

const (
	Son HeirCategory = iota + 1
	Father
	Husband
	Wife
	SonsSon
	Grandfather
	FullBrother
	PaternalBrother
	MaternalBrother
	FullBrothersSon
	PaternalBrothersSon
	FullUncle
	PaternalUncle
	FullUnclesSon
	PaternalUnclesSon
	Daughter
	SonsDaughter
	Mother
	MaternalGrandmother
	PaternalGrandmother
	FullSister
	PaternalSister
	MaternalSister
	Emancipator
	Emancipatrix
)

// CategoryCount is the number of known heir categories.
const CategoryCount = int(Emancipatrix)

// Sex represents the sex of the heirs in a category
type Sex int

const (
	Male Sex = iota
	Female
)

// String method for Sex enum
func (s Sex) String() string {
	switch s {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Unknown"
	}
}

// String method for HeirCategory enum
func (c HeirCategory) String() string {
	switch c {
	case Son:
		return "Son"
	case Father:
		return "Father"
	case Husband:
		return "Husband"
	case Wife:
		return "Wife"
	case SonsSon:
		return "Son's Son"
	case Grandfather:
		return "Grandfather"
	case FullBrother:
		return "Full Brother"
	case PaternalBrother:
		return "Paternal Half-Brother"
	case MaternalBrother:
		return "Maternal Half-Brother"
	case FullBrothersSon:
		return "Son of Full Brother"
	case PaternalBrothersSon:
		return "Son of Paternal Half-Brother"
	case FullUncle:
		return "Full Paternal Uncle"
	case PaternalUncle:
		return "Paternal Half-Uncle"
	case FullUnclesSon:
		return "Son of Full Paternal Uncle"
	case PaternalUnclesSon:
		return "Son of Paternal Half-Uncle"
	case Daughter:
		return "Daughter"
	case SonsDaughter:
		return "Son's Daughter"
	case Mother:
		return "Mother"
	case MaternalGrandmother:
		return "Maternal Grandmother"
	case PaternalGrandmother:
		return "Paternal Grandmother"
	case FullSister:
		return "Full Sister"
	case PaternalSister:
		return "Paternal Half-Sister"
	case MaternalSister:
		return "Maternal Half-Sister"
	case Emancipator:
		return "Emancipator"
	case Emancipatrix:
		return "Emancipatrix"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known categories
func (c HeirCategory) Valid() bool {
	return c >= Son && c <= Emancipatrix
}

// Sex returns the sex of the heirs in the category
func (c HeirCategory) Sex() Sex {
	switch c {
	case Wife, Daughter, SonsDaughter, Mother, MaternalGrandmother, PaternalGrandmother,
		FullSister, PaternalSister, MaternalSister, Emancipatrix:
		return Female
	default:
		return Male
	}
}

// Weight returns the per-capita weight used when a residue is split between heads:
// 2 for male agnates and the husband, 1 for female heirs that can become residuary,
// and 0 for categories that only ever take a fixed share.
func (c HeirCategory) Weight() int64 {
	switch c {
	case Son, Father, Husband, SonsSon, Grandfather, FullBrother, PaternalBrother,
		FullBrothersSon, PaternalBrothersSon, FullUncle, PaternalUncle,
		FullUnclesSon, PaternalUnclesSon, Emancipator:
		return 2
	case Daughter, SonsDaughter, FullSister, PaternalSister, Emancipatrix:
		return 1
	default:
		return 0
	}
}

// IsSpouse reports whether the category is husband or wife
func (c HeirCategory) IsSpouse() bool {
	return c == Husband || c == Wife
}

// IsDescendant reports whether the category is a child or a son's child
func (c HeirCategory) IsDescendant() bool {
	switch c {
	case Son, Daughter, SonsSon, SonsDaughter:
		return true
	}
	return false
}

// IsSibling reports whether the category is a brother or sister of any kind
func (c HeirCategory) IsSibling() bool {
	switch c {
	case FullBrother, PaternalBrother, MaternalBrother, FullSister, PaternalSister, MaternalSister:
		return true
	}
	return false
}

// IsMaternalSibling reports whether the category is a maternal half-sibling
func (c HeirCategory) IsMaternalSibling() bool {
	return c == MaternalBrother || c == MaternalSister
}

// IsGrandmother reports whether the category is one of the two grandmothers
func (c HeirCategory) IsGrandmother() bool {
	return c == MaternalGrandmother || c == PaternalGrandmother
}

// sexPairs maps each category whose sex can be in doubt to its male and female forms
var sexPairs = map[HeirCategory][2]HeirCategory{
	Son:             {Son, Daughter},
	Daughter:        {Son, Daughter},
	SonsSon:         {SonsSon, SonsDaughter},
	SonsDaughter:    {SonsSon, SonsDaughter},
	FullBrother:     {FullBrother, FullSister},
	FullSister:      {FullBrother, FullSister},
	PaternalBrother: {PaternalBrother, PaternalSister},
	PaternalSister:  {PaternalBrother, PaternalSister},
	MaternalBrother: {MaternalBrother, MaternalSister},
	MaternalSister:  {MaternalBrother, MaternalSister},
	Emancipator:     {Emancipator, Emancipatrix},
	Emancipatrix:    {Emancipator, Emancipatrix},
}

// SexForms returns the male and female category of the same kinship slot.
// ok is false for categories fixed to one sex by definition, such as Husband or Mother.
func (c HeirCategory) SexForms() (male, female HeirCategory, ok bool) {
	pair, ok := sexPairs[c]
	return pair[0], pair[1], ok
}

// AgnaticOrder is the precedence order of residuary male agnates. A present
// category blocks every category after it. Father and grandfather are
// handled by their own rules and do not appear here.
var AgnaticOrder = []HeirCategory{
	Son,
	SonsSon,
	FullBrother,
	PaternalBrother,
	FullBrothersSon,
	PaternalBrothersSon,
	FullUncle,
	PaternalUncle,
	FullUnclesSon,
	PaternalUnclesSon,
}

// AllCategories returns every known category in id order
func AllCategories() []HeirCategory {
	categories := make([]HeirCategory, 0, CategoryCount)
	for c := Son; c <= Emancipatrix; c++ {
		categories = append(categories, c)
	}
	return categories
}
